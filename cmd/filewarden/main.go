package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"filewarden/internal/app"
	"filewarden/internal/config"
	"filewarden/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a filewarden.yaml configuration file")
	workspace := flag.String("workspace", "", "workspace directory (overrides the configuration file)")
	flag.Parse()

	bootLog := logger.NewColoredLogger()

	cfg, err := loadConfig(*configPath, *workspace)
	if err != nil {
		bootLog.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	log := buildLogger(cfg)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("Failed to initialise filewarden: %v", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Received exit signal, shutting down gracefully...")
		cancel()
	}()

	if err := application.Run(ctx); err != nil && err != context.Canceled {
		log.Error("filewarden failed to run: %v", err)
		os.Exit(1)
	}

	log.Info("filewarden exited safely")
}

func buildLogger(cfg *config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.Logging.Level)

	if cfg.Logging.Format == "json" {
		return logger.NewStandardLogger(
			logger.WithFormatter(&logger.JSONFormatter{}),
			logger.WithLevel(level),
		)
	}
	return logger.NewColoredLogger(logger.WithLevel(level))
}

func loadConfig(path, workspace string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case path != "":
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	default:
		wd := workspace
		if wd == "" {
			wd, err = os.Getwd()
			if err != nil {
				return nil, err
			}
		}
		cfg = config.Default(wd)
	}

	if workspace != "" {
		cfg.Workspace = workspace
	}
	return cfg, nil
}
