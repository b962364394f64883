package dev

import (
	"path/filepath"

	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	"github.com/veedubyou/stem-splitter/src/shared/config/local"
)

// Local directories
const (
	UploadDir = "/tmp/uploads"
	OutputDir = "/tmp/outputs"
)

// spleeter downloads its pretrained models into the working dir
func SpleeterWorkingDir() string {
	return filepath.Join(local.ProjectRoot(), ".spleeter")
}

const Port = ":8080"

// RabbitMQ
const (
	RabbitMQHost      = "amqp://localhost:5672"
	RabbitMQQueueName = "stem-splitter-dev"
)

var RabbitMQConfig = config.RabbitMQ{
	URL:       RabbitMQHost,
	QueueName: RabbitMQQueueName,
}

// DynamoDB
const (
	DynamoAccessKeyID     = "local"
	DynamoSecretAccessKey = "local"
	DynamoDBHost          = "http://localhost:8000"
	DynamoDBRegion        = "localhost"
)

var DynamoConfig = config.LocalDynamo{
	AccessKeyID:     DynamoAccessKeyID,
	SecretAccessKey: DynamoSecretAccessKey,
	Region:          DynamoDBRegion,
	Host:            DynamoDBHost,
	TableName:       config.DefaultLedgerTable,
}

// LedgerConfig points the ledger at DynamoDB Local when JOB_LEDGER_ENABLED is set
func LedgerConfig() config.Dynamo {
	if !envvar.GetBool(envvar.JOB_LEDGER_ENABLED) {
		return nil
	}

	ledgerConfig := DynamoConfig
	ledgerConfig.TableName = envvar.GetOr(envvar.JOB_LEDGER_TABLE, config.DefaultLedgerTable)
	return ledgerConfig
}

// Google Cloud Storage emulator
const (
	FakeGCSHost   = "http://localhost:4443/storage/v1/"
	FakeGCSBucket = "stem-splitter-dev"
)

var CloudStorageConfig = config.LocalGoogleCloudStorage{
	HostEndpoint: FakeGCSHost,
	BucketName:   FakeGCSBucket,
}

// CloudStorage publishes to the GCS emulator by default.
// The s3 backend is read from the environment, with S3_ENDPOINT aimed at a local S3 compatible host.
func CloudStorage() config.CloudStorage {
	if envvar.GetOr(envvar.REMOTE_STORAGE_BACKEND, config.GoogleBackend) != config.GoogleBackend {
		return config.CloudStorageFromEnv()
	}

	if !envvar.GetBool(envvar.REMOTE_STORAGE_ENABLED) {
		return nil
	}

	storageConfig := CloudStorageConfig
	storageConfig.BucketName = envvar.GetOr(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME, FakeGCSBucket)
	return storageConfig
}
