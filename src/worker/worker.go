package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/config/dev"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	"github.com/veedubyou/stem-splitter/src/shared/lib/env"
	"github.com/veedubyou/stem-splitter/src/worker/application"
)

func main() {
	var appConfig application.Config

	switch env.Get() {
	case env.Production:
		appConfig = application.Config{
			RabbitMQ: config.RabbitMQ{
				URL:       envvar.MustGet(envvar.RABBITMQ_URL),
				QueueName: envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			},
			CloudStorageConfig: config.CloudStorageFromEnv(),
			LedgerConfig:       config.LedgerFromEnv(),
			UploadDir:          envvar.MustGet(envvar.UPLOAD_DIR),
			OutputDir:          envvar.MustGet(envvar.OUTPUT_DIR),
			SpleeterBinPath:    envvar.MustGet(envvar.SPLEETER_BIN_PATH),
			SpleeterWorkingDir: envvar.MustGet(envvar.SPLEETER_WORKING_DIR),
			SeparationTimeout:  envvar.GetDurationOr(envvar.SEPARATION_TIMEOUT, 0),
		}

	case env.Development:
		if err := godotenv.Load(); err != nil {
			log.WithError(err).Info("No .env file loaded")
		}

		appConfig = application.Config{
			RabbitMQ:           dev.RabbitMQConfig,
			CloudStorageConfig: dev.CloudStorage(),
			LedgerConfig:       dev.LedgerConfig(),
			UploadDir:          envvar.GetOr(envvar.UPLOAD_DIR, dev.UploadDir),
			OutputDir:          envvar.GetOr(envvar.OUTPUT_DIR, dev.OutputDir),
			SpleeterBinPath:    envvar.GetOr(envvar.SPLEETER_BIN_PATH, config.SpleeterPath()),
			SpleeterWorkingDir: envvar.GetOr(envvar.SPLEETER_WORKING_DIR, dev.SpleeterWorkingDir()),
			SeparationTimeout:  envvar.GetDurationOr(envvar.SEPARATION_TIMEOUT, 0),
		}

	default:
		panic("Unexpected environment")
	}

	app, err := application.NewApp(appConfig)
	if err != nil {
		panic(err)
	}

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals

		log.Info("Shutting down worker")
		app.Stop()
	}()

	if err := app.Start(); err != nil {
		panic(err)
	}
}
