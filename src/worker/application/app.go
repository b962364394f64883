package application

import (
	"context"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/store"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/storagepath"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/job/ledger"
	"github.com/veedubyou/stem-splitter/src/shared/job/storage"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"github.com/veedubyou/stem-splitter/src/shared/split/executor"
	"github.com/veedubyou/stem-splitter/src/shared/split/separation"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter/file_splitter"
	"github.com/veedubyou/stem-splitter/src/worker/internal/application/jobs/job_router"
	"github.com/veedubyou/stem-splitter/src/worker/internal/application/jobs/split"
	"github.com/veedubyou/stem-splitter/src/worker/internal/application/worker"
)

type App struct {
	worker *worker.QueueWorker
}

type Config struct {
	RabbitMQ           config.RabbitMQ
	CloudStorageConfig config.CloudStorage
	LedgerConfig       config.Dynamo

	UploadDir          string
	OutputDir          string
	SpleeterBinPath    string
	SpleeterWorkingDir string
	Executor           executor.Executor
	SeparationTimeout  time.Duration
}

func NewApp(config Config) (*App, error) {
	consumerConn, err := amqp091.Dial(config.RabbitMQ.URL)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Failed to dial rabbitMQ url")
	}

	jobRouter, err := newJobRouter(config)
	if err != nil {
		_ = consumerConn.Close()
		return nil, err
	}

	queueWorker, err := worker.NewQueueWorkerFromConnection(consumerConn, config.RabbitMQ.QueueName, jobRouter)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Failed to create queue worker")
	}

	return &App{
		worker: queueWorker,
	}, nil
}

// NewAppWithChannel consumes from an already open channel
func NewAppWithChannel(config Config, channel worker.MessageChannel) (*App, error) {
	jobRouter, err := newJobRouter(config)
	if err != nil {
		return nil, err
	}

	return &App{
		worker: worker.NewQueueWorker(channel, config.RabbitMQ.QueueName, jobRouter),
	}, nil
}

func (a *App) Start() error {
	err := a.worker.Start()
	if err != nil {
		return cerr.Wrap(err).Error("Failed to start worker")
	}

	return nil
}

func (a *App) Stop() {
	a.worker.Stop()
}

func newJobRouter(config Config) (job_router.JobRouter, error) {
	jobStore, err := jobstorage.NewFileStore(config.UploadDir, config.OutputDir)
	if err != nil {
		return job_router.JobRouter{}, cerr.Wrap(err).Error("Failed to create job store")
	}

	splitHandler, err := newSplitJobHandler(config, jobStore)
	if err != nil {
		return job_router.JobRouter{}, err
	}

	return job_router.NewJobRouter(splitHandler), nil
}

func newSplitJobHandler(config Config, jobStore jobstorage.FileStore) (split.JobHandler, error) {
	spleeterExecutor := config.Executor
	if spleeterExecutor == nil {
		spleeterExecutor = executor.BinaryFileExecutor{}
	}

	localSplitter, err := file_splitter.NewLocalFileSplitter(
		config.SpleeterWorkingDir,
		config.SpleeterBinPath,
		spleeterExecutor,
	)
	if err != nil {
		return split.JobHandler{}, cerr.Wrap(err).Error("Failed to create file splitter")
	}

	uploader, err := store.NewUploaderFromConfig(config.CloudStorageConfig)
	if err != nil {
		return split.JobHandler{}, cerr.Wrap(err).Error("Failed to create remote storage uploader")
	}

	jobLedger, err := ledger.NewFromConfig(context.Background(), config.LedgerConfig)
	if err != nil {
		return split.JobHandler{}, cerr.Wrap(err).Error("Failed to create job ledger")
	}

	separationWorker := separation.NewWorker(
		jobStore,
		localSplitter,
		uploader,
		storagepath.Generator{Prefix: storagepath.DefaultPrefix},
		jobLedger,
		config.SeparationTimeout,
	)

	return split.NewJobHandler(jobStore, separationWorker), nil
}
