// Package stress drives a signal with concurrent emitters and connection
// churn, then checks the connection pool for lost or leaked cells.
package stress

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrVerification    = errors.New("verification failed")
)

// Scenario is one stress configuration. Every field is used as given, so zero
// readers or writers are valid; start from DefaultScenario to get defaults. A
// zero Timeout means no limit.
type Scenario struct {
	Name             string        `yaml:"name"`
	Readers          int           `yaml:"readers"`
	Writers          int           `yaml:"writers"`
	TargetsPerWriter int           `yaml:"targetsPerWriter"`
	Iterations       int           `yaml:"iterations"`
	Capacity         int           `yaml:"capacity"`
	Tracked          bool          `yaml:"tracked"`
	Seed             string        `yaml:"seed"`
	Timeout          time.Duration `yaml:"timeout"`
}

type scenarioFile struct {
	Scenarios []yaml.Node `yaml:"scenarios"`
}

func DefaultScenario() Scenario {
	return Scenario{
		Name:             "default",
		Readers:          4,
		Writers:          4,
		TargetsPerWriter: 32,
		Iterations:       10_000,
		Capacity:         64,
		Seed:             "sigslot",
		Timeout:          time.Minute,
	}
}

func (sc Scenario) validate() error {
	switch {
	case sc.Readers < 0:
		return fmt.Errorf("%w: %s: readers %d", ErrInvalidScenario, sc.Name, sc.Readers)
	case sc.Writers < 0:
		return fmt.Errorf("%w: %s: writers %d", ErrInvalidScenario, sc.Name, sc.Writers)
	case sc.TargetsPerWriter < 0:
		return fmt.Errorf("%w: %s: targetsPerWriter %d", ErrInvalidScenario, sc.Name, sc.TargetsPerWriter)
	case sc.Iterations < 0:
		return fmt.Errorf("%w: %s: iterations %d", ErrInvalidScenario, sc.Name, sc.Iterations)
	case sc.Capacity < 0:
		return fmt.Errorf("%w: %s: capacity %d", ErrInvalidScenario, sc.Name, sc.Capacity)
	case sc.Timeout < 0:
		return fmt.Errorf("%w: %s: timeout %s", ErrInvalidScenario, sc.Name, sc.Timeout)
	}
	return nil
}

// ParseScenarios decodes a document with a top level "scenarios" list. Each
// entry is decoded over DefaultScenario, so omitted keys keep their default
// and keys written as 0 stay 0.
func ParseScenarios(data []byte) ([]Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: no scenarios", ErrInvalidScenario)
	}
	out := make([]Scenario, len(f.Scenarios))
	for i, node := range f.Scenarios {
		sc := DefaultScenario()
		sc.Name = fmt.Sprintf("scenario-%d", i+1)
		if err := node.Decode(&sc); err != nil {
			return nil, fmt.Errorf("scenario %d: yaml.Decode: %w", i+1, err)
		}
		if err := sc.validate(); err != nil {
			return nil, err
		}
		out[i] = sc
	}
	return out, nil
}

func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	return ParseScenarios(data)
}
