package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/sigslot/stress"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

func runWith(t *testing.T, args []string, action cli.ActionFunc) {
	t.Helper()
	cmd := newCommand()
	cmd.Action = action
	require.NoError(t, cmd.Run(context.Background(), append([]string{"stress"}, args...)))
}

func TestLogFileRotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stress.log")

	var logger *logrus.Logger
	runWith(t, []string{"--log-file", path, "--log-level", "debug"}, func(ctx context.Context, cmd *cli.Command) error {
		var err error
		logger, err = newLogger(cmd)
		return err
	})

	out, ok := logger.Out.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, path, out.Filename)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Info("rotated output")
	require.NoError(t, out.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotated output")
}

func TestScenarioFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - name: writers-only\n    readers: 0\n    iterations: 50\n"), 0o644))

	var scs []stress.Scenario
	runWith(t, []string{"--scenarios", path, "--writers", "2"}, func(ctx context.Context, cmd *cli.Command) error {
		var err error
		scs, err = scenarios(cmd)
		return err
	})

	require.Len(t, scs, 1)
	assert.Equal(t, "writers-only", scs[0].Name)
	assert.Zero(t, scs[0].Readers)
	assert.Equal(t, 2, scs[0].Writers)
	assert.Equal(t, 50, scs[0].Iterations)
	assert.Equal(t, stress.DefaultScenario().Capacity, scs[0].Capacity)
}

func TestScenarioFromFlags(t *testing.T) {
	var scs []stress.Scenario
	runWith(t, []string{"--readers", "0", "--tracked"}, func(ctx context.Context, cmd *cli.Command) error {
		var err error
		scs, err = scenarios(cmd)
		return err
	})

	require.Len(t, scs, 1)
	assert.Equal(t, "cli", scs[0].Name)
	assert.Zero(t, scs[0].Readers)
	assert.True(t, scs[0].Tracked)
	assert.Equal(t, stress.DefaultScenario().Writers, scs[0].Writers)
}
