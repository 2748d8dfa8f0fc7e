// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/orx/orx/glue/config"
	"github.com/orx/orx/glue/coordinator"
	"github.com/orx/orx/glue/core"
	"github.com/orx/orx/glue/debugapi"
	"github.com/orx/orx/glue/enginethread"
	"github.com/orx/orx/glue/graphics/software"
	"github.com/orx/orx/glue/input"
	"github.com/orx/orx/glue/logging"
	"github.com/orx/orx/glue/toolkit/terminal"
)

type options struct {
	ConfigFile string  `long:"config" description:"path to a YAML configuration file"`
	LogLevel   string  `long:"log-level" description:"log level (overrides config)"`
	LogFile    string  `long:"log-file" description:"file receiving logs while the terminal is in use"`
	TargetFPS  float64 `long:"fps" description:"target frames per second, 0 for unlimited"`
	DebugAddr  string  `long:"debug-addr" description:"address of the debug HTTP API"`
	Snapshot   string  `long:"snapshot" description:"write the last frame as PNG to this path on exit"`
}

func main() {
	opts := getCLIArgs()
	cfg := loadConfig(opts)

	logFile := setupLogging(cfg)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.WithError(err).Error("orx-term terminated with error")
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.WithError(err).Fatal("Failed to parse command line arguments")
	}
	return opts
}

func loadConfig(opts options) config.Config {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			log.WithError(err).Fatal("Failed to load configuration")
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		log.WithError(err).Fatal("Failed to apply environment")
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.TargetFPS != 0 {
		cfg.Engine.TargetFPS = opts.TargetFPS
	}
	if opts.DebugAddr != "" {
		cfg.Debug.Addr = opts.DebugAddr
	}
	if opts.Snapshot != "" {
		cfg.Graphics.SnapshotPath = opts.Snapshot
	}

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	return cfg
}

// setupLogging routes logs away from the terminal, which tcell owns for
// the whole run.
func setupLogging(cfg config.Config) *os.File {
	if err := logging.SetLogLevel(cfg.LogLevel); err != nil {
		log.WithError(err).Fatal("Invalid log level")
	}
	if cfg.LogFile == "" {
		logging.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Fatal("Failed to open log file")
	}
	logging.SetOutput(f)
	return f
}

func run(cfg config.Config) error {
	lifecycle := core.NewLifecycle()
	queue := input.NewQueue(cfg.Input.QueueCapacity)
	provider := software.NewProvider(cfg.Graphics.SnapshotPath)

	thread := enginethread.New(lifecycle, newBouncer(), provider, queue).
		SetFrameLimit(cfg.Engine.TargetFPS)

	toolkit, err := terminal.New()
	if err != nil {
		return err
	}

	coord := coordinator.New(lifecycle, thread, queue, toolkit).
		SetRotationProvider(toolkit).
		SetSurfaceScale(cfg.Input.SurfaceScale).
		SetMaxControllers(cfg.Input.MaxControllers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Debug.Addr != "" {
		server := debugapi.NewServer(cfg.Debug.Addr, coord)
		if err := server.Listen(); err != nil {
			return err
		}
		log.Infof("Debug API listening on %s", server.Addr())
		g.Go(func() error { return server.Serve(gctx) })
	}

	g.Go(func() error {
		defer stop()
		if err := coord.Run(gctx); err != nil {
			return err
		}
		return coord.Wait(context.Background())
	})

	err = g.Wait()

	desc := coord.GetInternalStateDescription()
	log.Debugf("Final state: %s", desc.AsJSON())
	return err
}
