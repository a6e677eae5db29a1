// Command qtest runs a queue command script against the queue
// package, reading commands from a file or standard input.
//
// Settings come from an optional yaml file and are overridden by
// QTEST_* variables, taken from the environment or a dotenv file.
// The exit status is 1 when any command failed or storage leaked.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/unixpickle/essentials"
	"go.uber.org/zap"

	"github.com/ShawnXuanc/lab0/harness"
)

func main() {
	var configPath string
	var scriptPath string
	var envPath string
	var seed uint64
	flag.StringVar(&configPath, "config", "", "yaml configuration file")
	flag.StringVar(&scriptPath, "f", "", "command script (default: standard input)")
	flag.StringVar(&envPath, "env", ".env", "dotenv file with QTEST_* overrides")
	flag.Uint64Var(&seed, "seed", 0, "random seed, overriding the configuration")
	flag.Parse()

	if flag.NArg() > 0 {
		essentials.Die("Unexpected arguments. See -help.")
	}

	conf := harness.DefaultConfig()
	if configPath != "" {
		var err error
		conf, err = harness.ReadConfigFile(configPath)
		essentials.Must(err)
	}
	essentials.Must(conf.LoadEnv(envPath))
	if seed != 0 {
		conf.Seed = seed
	}

	logger, err := conf.Logger()
	essentials.Must(err)
	defer logger.Sync()

	var in io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		essentials.Must(err)
		defer f.Close()
		in = f
	}

	console, err := harness.NewConsole(conf, os.Stdout, logger)
	essentials.Must(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.Run(ctx, in); err != nil {
		logger.Error("qtest failed", zap.String("summary", console.Summary()), zap.Error(err))
		fmt.Fprintln(os.Stderr, "qtest:", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("qtest finished", zap.String("summary", console.Summary()))
}
