package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/gateway"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/usecase"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/store"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/storagepath"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/job/ledger"
	"github.com/veedubyou/stem-splitter/src/shared/job/storage"
	"github.com/veedubyou/stem-splitter/src/shared/lib/rabbitmq"
	"github.com/veedubyou/stem-splitter/src/shared/split/dispatch"
	"github.com/veedubyou/stem-splitter/src/shared/split/executor"
	"github.com/veedubyou/stem-splitter/src/shared/split/separation"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter/file_splitter"
)

type HTTPMethod string

const (
	GET  HTTPMethod = "GET"
	POST HTTPMethod = "POST"
)

type App struct {
	echo       *echo.Echo
	port       string
	dispatcher dispatch.Dispatcher
	publisher  *rabbitmq.QueuePublisher
}

type Config struct {
	UploadDir          string
	OutputDir          string
	SpleeterBinPath    string
	SpleeterWorkingDir string
	Executor           executor.Executor
	SeparationTimeout  time.Duration
	Dispatch           config.Dispatch
	CloudStorageConfig config.CloudStorage
	LedgerConfig       config.Dynamo
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	Port               string
	Log                bool
}

func NewApp(config Config) (*App, error) {
	e := echo.New()
	e.HideBanner = true

	if config.Log {
		e.Use(middleware.Logger())
	}

	if config.MaxUploadBytes > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", config.MaxUploadBytes)))
	}

	corsMiddleware := makeCorsMiddleware(config)

	handleRoute := func(method HTTPMethod, path string, handlerFunc echo.HandlerFunc) {
		params := func() (string, echo.HandlerFunc, echo.MiddlewareFunc) {
			return path, handlerFunc, corsMiddleware
		}

		e.OPTIONS(params())

		switch method {
		case GET:
			e.GET(params())
		case POST:
			e.POST(params())
		default:
			panic("unhandled http method!")
		}
	}

	app := &App{
		echo: e,
		port: config.Port,
	}

	jobStore, err := jobstorage.NewFileStore(config.UploadDir, config.OutputDir)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create job store")
	}

	jobLedger, err := ledger.NewFromConfig(context.Background(), config.LedgerConfig)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create job ledger")
	}

	if err := app.makeDispatcher(config, jobStore, jobLedger); err != nil {
		return nil, err
	}

	jobGateway := jobgateway.NewGateway(jobusecase.NewUsecase(jobStore, app.dispatcher, jobLedger))

	// health check
	handleRoute(GET, "/health-check", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// job routes
	handleRoute(POST, "/upload", jobGateway.Upload)
	handleRoute(GET, "/status/:job_id", func(c echo.Context) error {
		jobID := c.Param("job_id")
		return jobGateway.GetStatus(c, jobID)
	})
	handleRoute(GET, "/download/:job_id/*", func(c echo.Context) error {
		jobID := c.Param("job_id")
		return jobGateway.Download(c, jobID, c.Param("*"))
	})

	return app, nil
}

func (a *App) makeDispatcher(appConfig Config, jobStore jobstorage.FileStore, jobLedger ledger.Ledger) error {
	switch t := appConfig.Dispatch.(type) {
	case config.RabbitMQ:
		publisher, err := rabbitmq.NewQueuePublisher(t.URL, t.QueueName)
		if err != nil {
			return errors.Wrap(err, "Failed to create rabbitMQ publisher")
		}

		a.publisher = publisher
		a.dispatcher = dispatch.NewQueueDispatcher(publisher)
		return nil

	case config.LocalPool:
		runner, err := makeSeparationWorker(appConfig, jobStore, jobLedger)
		if err != nil {
			return err
		}

		a.dispatcher = dispatch.NewLocalDispatcher(runner, t.MaxConcurrentJobs)
		return nil

	default:
		panic("Unexpected dispatch config type")
	}
}

func makeSeparationWorker(config Config, jobStore jobstorage.FileStore, jobLedger ledger.Ledger) (separation.Worker, error) {
	spleeterExecutor := config.Executor
	if spleeterExecutor == nil {
		spleeterExecutor = executor.BinaryFileExecutor{}
	}

	localSplitter, err := file_splitter.NewLocalFileSplitter(config.SpleeterWorkingDir, config.SpleeterBinPath, spleeterExecutor)
	if err != nil {
		return separation.Worker{}, errors.Wrap(err, "Failed to create file splitter")
	}

	uploader, err := store.NewUploaderFromConfig(config.CloudStorageConfig)
	if err != nil {
		return separation.Worker{}, errors.Wrap(err, "Failed to create remote storage uploader")
	}

	pathGenerator := storagepath.Generator{Prefix: storagepath.DefaultPrefix}
	return separation.NewWorker(jobStore, localSplitter, uploader, pathGenerator, jobLedger, config.SeparationTimeout), nil
}

func makeCorsMiddleware(config Config) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: config.CORSAllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType},
	})
}

// Handler exposes the routes without binding a port
func (a *App) Handler() http.Handler {
	return a.echo
}

func (a *App) Start() error {
	log.WithField("port", a.port).Info("Starting server")

	err := a.echo.Start(a.port)
	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "Couldn't start echo server")
	}

	return nil
}

// Stop closes the listener, then waits for in flight separations
func (a *App) Stop() error {
	err := a.echo.Close()
	if err != nil {
		return errors.Wrap(err, "Failed to stop echo server")
	}

	a.dispatcher.Wait()

	if a.publisher != nil {
		a.publisher.Close()
	}

	return nil
}
