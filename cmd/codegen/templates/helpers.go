package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// typedParams renders "v0 T0, v1 T1, ...".
func typedParams(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("v" + n + " T" + n)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

// fieldInits renders "V0: v0, V1: v1, ...".
func fieldInits(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		n := strconv.Itoa(i)
		sb.WriteString("V" + n + ": v" + n)
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

var numberWords = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight"}

func numberWord(n int) string {
	if n < len(numberWords) {
		return numberWords[n]
	}
	return strconv.Itoa(n)
}

// Arities lists the generated arities for a maximum argument count. Arity
// one is the plain Signal and is skipped.
func Arities(max int) []int {
	out := []int{0}
	for n := 2; n <= max; n++ {
		out = append(out, n)
	}
	return out
}
