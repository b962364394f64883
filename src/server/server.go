package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"github.com/veedubyou/stem-splitter/src/server/application"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/config/dev"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	"github.com/veedubyou/stem-splitter/src/shared/lib/env"
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			UploadDir:          envvar.MustGet(envvar.UPLOAD_DIR),
			OutputDir:          envvar.MustGet(envvar.OUTPUT_DIR),
			SpleeterBinPath:    envvar.GetOr(envvar.SPLEETER_BIN_PATH, "spleeter"),
			SpleeterWorkingDir: envvar.MustGet(envvar.SPLEETER_WORKING_DIR),
			SeparationTimeout:  envvar.GetDurationOr(envvar.SEPARATION_TIMEOUT, 0),
			Dispatch:           config.DispatchFromEnv(),
			CloudStorageConfig: config.CloudStorageFromEnv(),
			LedgerConfig:       config.LedgerFromEnv(),
			MaxUploadBytes:     envvar.GetIntOr(envvar.MAX_UPLOAD_BYTES, config.DefaultMaxUploadBytes),
			CORSAllowedOrigins: allowedOrigins,
			Port:               ":" + envvar.GetOr(envvar.PORT, "5000"),
			Log:                true,
		}

	case env.Development:
		if err := godotenv.Load(); err != nil {
			log.WithError(err).Info("No .env file loaded")
		}

		appConfig = application.Config{
			UploadDir:          envvar.GetOr(envvar.UPLOAD_DIR, dev.UploadDir),
			OutputDir:          envvar.GetOr(envvar.OUTPUT_DIR, dev.OutputDir),
			SpleeterBinPath:    envvar.GetOr(envvar.SPLEETER_BIN_PATH, config.SpleeterPath()),
			SpleeterWorkingDir: envvar.GetOr(envvar.SPLEETER_WORKING_DIR, dev.SpleeterWorkingDir()),
			SeparationTimeout:  envvar.GetDurationOr(envvar.SEPARATION_TIMEOUT, 0),
			Dispatch:           config.DispatchFromEnv(),
			CloudStorageConfig: dev.CloudStorage(),
			LedgerConfig:       dev.LedgerConfig(),
			MaxUploadBytes:     envvar.GetIntOr(envvar.MAX_UPLOAD_BYTES, config.DefaultMaxUploadBytes),
			CORSAllowedOrigins: []string{"*"},
			Port:               dev.Port,
			Log:                true,
		}

	default:
		panic("Unexpected environment")
	}

	app, err := application.NewApp(appConfig)
	if err != nil {
		panic(err)
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals

		log.Info("Shutting down, waiting for running jobs")
		if err := app.Stop(); err != nil {
			log.WithError(err).Error("Failed to stop cleanly")
		}
	}()

	if err := app.Start(); err != nil {
		panic(err)
	}

	<-stopped
}
