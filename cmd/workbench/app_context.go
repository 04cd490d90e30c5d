package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/workbench/internal/config"
	"github.com/alexisbeaulieu97/workbench/internal/host"
	"github.com/alexisbeaulieu97/workbench/internal/logger"
)

// AppContext bundles long-lived services created for one command.
type AppContext struct {
	Config *config.Config
	Logger *logger.Logger
	Host   *host.Host
}

// openApp loads the configuration, builds the logger and starts the host.
func openApp(cmd *cobra.Command, flags *rootFlags) (*AppContext, error) {
	path := flags.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, newCommandError("start", "loading configuration "+path, err, "Fix the configuration file or pass --config.")
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: cfg.Log.Human || flags.verbose, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	h, err := host.New(host.Options{Config: cfg, Logger: log, Version: version})
	if err != nil {
		return nil, newCommandError("start", "opening preferences", err, "Check the preferences path in the configuration file.")
	}
	h.Start()

	return &AppContext{Config: cfg, Logger: log.Component("cli"), Host: h}, nil
}

// Close shuts the host down.
func (a *AppContext) Close() {
	if err := a.Host.Shutdown(); err != nil {
		a.Logger.Error(err, "shutdown failed")
	}
}
