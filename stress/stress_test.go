package stress_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/delaneyj/sigslot/stress"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

const scenariosYAML = `
scenarios:
  - name: churn
    readers: 2
    writers: 3
    targetsPerWriter: 8
    iterations: 500
    capacity: 4
  - name: tracked
    tracked: true
    iterations: 200
    timeout: 30s
`

func TestParseScenarios(t *testing.T) {
	scs, err := stress.ParseScenarios([]byte(scenariosYAML))
	require.NoError(t, err)
	require.Len(t, scs, 2)

	assert.Equal(t, "churn", scs[0].Name)
	assert.Equal(t, 3, scs[0].Writers)
	assert.Equal(t, 4, scs[0].Capacity)
	assert.Equal(t, stress.DefaultScenario().Seed, scs[0].Seed)

	def := stress.DefaultScenario()
	assert.True(t, scs[1].Tracked)
	assert.Equal(t, def.Readers, scs[1].Readers)
	assert.Equal(t, 30*time.Second, scs[1].Timeout)
}

func TestParseScenariosKeepsExplicitZero(t *testing.T) {
	scs, err := stress.ParseScenarios([]byte("scenarios:\n  - name: writers-only\n    readers: 0\n    timeout: 0s\n  - {}\n"))
	require.NoError(t, err)
	require.Len(t, scs, 2)

	def := stress.DefaultScenario()
	assert.Zero(t, scs[0].Readers)
	assert.Zero(t, scs[0].Timeout)
	assert.Equal(t, def.Writers, scs[0].Writers)
	assert.Equal(t, "scenario-2", scs[1].Name)
	assert.Equal(t, def.Readers, scs[1].Readers)
}

func TestRunWritersOnly(t *testing.T) {
	sc := stress.DefaultScenario()
	sc.Name = "writers-only"
	sc.Readers = 0
	sc.Iterations = 200

	rep, err := stress.Run(context.Background(), sc, quietLogger())
	require.NoError(t, err)
	assert.Zero(t, rep.Emits)
	assert.EqualValues(t, sc.Writers*sc.Iterations, rep.Connects+rep.Disconnects)
	assert.Zero(t, rep.Stats.Pending())
}

func TestParseScenariosRejects(t *testing.T) {
	_, err := stress.ParseScenarios([]byte("scenarios: []"))
	assert.ErrorIs(t, err, stress.ErrInvalidScenario)

	_, err = stress.ParseScenarios([]byte("scenarios:\n  - readers: -1\n"))
	assert.ErrorIs(t, err, stress.ErrInvalidScenario)

	_, err = stress.ParseScenarios([]byte("scenarios: {"))
	assert.Error(t, err)
}

func TestLoadScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenariosYAML), 0o644))

	scs, err := stress.LoadScenarios(path)
	require.NoError(t, err)
	assert.Len(t, scs, 2)

	_, err = stress.LoadScenarios(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunChurn(t *testing.T) {
	rep, err := stress.Run(context.Background(), stress.Scenario{
		Name:             "churn",
		Readers:          3,
		Writers:          3,
		TargetsPerWriter: 8,
		Iterations:       400,
		Capacity:         4,
	}, quietLogger())
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.EqualValues(t, 3*400, rep.Connects+rep.Disconnects)
	assert.Zero(t, rep.Stats.Pending())
	assert.Equal(t, rep.Stats.Cells, rep.Stats.Live+rep.Stats.Free)
	assert.Zero(t, rep.Expired)
}

func TestRunTracked(t *testing.T) {
	rep, err := stress.Run(context.Background(), stress.Scenario{
		Name:             "tracked",
		Readers:          2,
		Writers:          2,
		TargetsPerWriter: 16,
		Iterations:       300,
		Tracked:          true,
	}, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Stats.Live)
	assert.Positive(t, rep.Expired)
	assert.Zero(t, rep.Stats.Pending())
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	sc := stress.Scenario{Name: "seeded", Writers: 2, TargetsPerWriter: 4, Iterations: 100, Seed: "fixed"}
	a, err := stress.Run(context.Background(), sc, quietLogger())
	require.NoError(t, err)
	b, err := stress.Run(context.Background(), sc, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, a.Connects, b.Connects)
	assert.Equal(t, a.Stats.Live, b.Stats.Live)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stress.Run(ctx, stress.Scenario{Name: "cancelled", Writers: 1, TargetsPerWriter: 4, Iterations: 10}, quietLogger())
	assert.ErrorIs(t, err, context.Canceled)
}
