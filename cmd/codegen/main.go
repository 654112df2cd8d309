package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/delaneyj/sigslot/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	maxArityKey = "count"
	outputKey   = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate multi-argument signal wrappers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxArityKey,
				Usage: "Highest argument count to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "Output file",
				Value: "sigslot/arity.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for sigslot started !")
	defer func() {
		log.Printf("Codegen for sigslot finished in %v", time.Since(start))
	}()

	maxArity := int(cmd.Uint(maxArityKey))
	if maxArity < 2 {
		return fmt.Errorf("count must be at least 2, got %d", maxArity)
	}
	arities := templates.Arities(maxArity)
	log.Printf("Arities: %v", arities)

	src, err := format.Source([]byte(templates.ArityGen(arities)))
	if err != nil {
		return fmt.Errorf("format generated code: %w", err)
	}

	out := cmd.String(outputKey)
	if err := os.WriteFile(out, src, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}
