package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/sigslot/stress"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	scenariosKey  = "scenarios"
	readersKey    = "readers"
	writersKey    = "writers"
	targetsKey    = "targets"
	iterationsKey = "iterations"
	capacityKey   = "capacity"
	trackedKey    = "tracked"
	seedKey       = "seed"
	timeoutKey    = "timeout"
	logFileKey    = "log-file"
	logLevelKey   = "log-level"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	def := stress.DefaultScenario()
	return &cli.Command{
		Name:  "stress",
		Usage: "Hammer a signal with concurrent emitters and connection churn",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: scenariosKey, Usage: "YAML file with a scenarios list"},
			&cli.IntFlag{Name: readersKey, Usage: "Emitting goroutines", Value: int64(def.Readers)},
			&cli.IntFlag{Name: writersKey, Usage: "Connecting goroutines", Value: int64(def.Writers)},
			&cli.IntFlag{Name: targetsKey, Usage: "Targets owned by each writer", Value: int64(def.TargetsPerWriter)},
			&cli.IntFlag{Name: iterationsKey, Usage: "Operations per writer", Value: int64(def.Iterations)},
			&cli.IntFlag{Name: capacityKey, Usage: "Connection pool block size", Value: int64(def.Capacity)},
			&cli.BoolFlag{Name: trackedKey, Usage: "Track every writer connection with an owner lifetime"},
			&cli.StringFlag{Name: seedKey, Usage: "Seed for writer operation sequences", Value: def.Seed},
			&cli.DurationFlag{Name: timeoutKey, Usage: "Per scenario time limit", Value: def.Timeout},
			&cli.StringFlag{Name: logFileKey, Usage: "Write logs to a rotated file instead of stderr"},
			&cli.StringFlag{Name: logLevelKey, Usage: "Log level", Value: "info"},
		},
		Action: run,
	}
}

func newLogger(cmd *cli.Command) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cmd.String(logLevelKey))
	if err != nil {
		return nil, fmt.Errorf("logrus.ParseLevel: %w", err)
	}
	logger.SetLevel(level)

	if file := cmd.String(logFileKey); file != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	}
	return logger, nil
}

// scenarios loads the scenario file when given and applies every flag the
// user set on top of each entry. Without a file the flags describe a single
// scenario.
func scenarios(cmd *cli.Command) ([]stress.Scenario, error) {
	path := cmd.String(scenariosKey)
	if path == "" {
		sc := stress.DefaultScenario()
		sc.Name = "cli"
		applyFlags(cmd, &sc, true)
		return []stress.Scenario{sc}, nil
	}

	scs, err := stress.LoadScenarios(path)
	if err != nil {
		return nil, err
	}
	for i := range scs {
		applyFlags(cmd, &scs[i], false)
	}
	return scs, nil
}

func applyFlags(cmd *cli.Command, sc *stress.Scenario, all bool) {
	set := func(name string) bool {
		return all || cmd.IsSet(name)
	}
	if set(readersKey) {
		sc.Readers = int(cmd.Int(readersKey))
	}
	if set(writersKey) {
		sc.Writers = int(cmd.Int(writersKey))
	}
	if set(targetsKey) {
		sc.TargetsPerWriter = int(cmd.Int(targetsKey))
	}
	if set(iterationsKey) {
		sc.Iterations = int(cmd.Int(iterationsKey))
	}
	if set(capacityKey) {
		sc.Capacity = int(cmd.Int(capacityKey))
	}
	if set(trackedKey) {
		sc.Tracked = cmd.Bool(trackedKey)
	}
	if set(seedKey) {
		sc.Seed = cmd.String(seedKey)
	}
	if set(timeoutKey) {
		sc.Timeout = cmd.Duration(timeoutKey)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	scs, err := scenarios(cmd)
	if err != nil {
		return err
	}

	log.Printf("Running %d stress scenario(s), please wait...", len(scs))
	start := time.Now()
	defer func() {
		log.Printf("Finished stress run in %v", time.Since(start))
	}()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"scenario", "readers", "writers", "tracked", "time",
		"emits", "emits/s", "connects", "disconnects", "expired",
		"blocks", "reclaimed", "result",
	})

	var failed []error
	for _, sc := range scs {
		log.Printf("Running '%s' scenario", sc.Name)
		rep, err := stress.Run(ctx, sc, logger)
		result := "ok"
		if err != nil {
			result = err.Error()
			failed = append(failed, fmt.Errorf("%s: %w", sc.Name, err))
		}

		rate := 0.0
		if rep.Duration > 0 {
			rate = float64(rep.Emits) / rep.Duration.Seconds()
		}
		table.Append([]string{
			sc.Name,
			humanize.Comma(int64(sc.Readers)),
			humanize.Comma(int64(sc.Writers)),
			fmt.Sprint(sc.Tracked),
			rep.Duration.Round(time.Millisecond).String(),
			humanize.Comma(rep.Emits),
			humanize.Comma(int64(rate)),
			humanize.Comma(rep.Connects),
			humanize.Comma(rep.Disconnects),
			humanize.Comma(int64(rep.Expired)),
			humanize.Comma(int64(rep.Stats.Blocks)),
			humanize.Comma(int64(rep.Reclaimed)),
			result,
		})
	}
	table.Render()

	return errors.Join(failed...)
}
