package dev_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/config/dev"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
	. "github.com/veedubyou/stem-splitter/src/shared/testing"
)

var _ = Describe("Dev values", func() {
	Describe("LedgerConfig", func() {
		It("is nil unless the ledger is enabled", func() {
			SetEnvVars(map[string]string{envvar.JOB_LEDGER_ENABLED: ""})
			Expect(dev.LedgerConfig()).To(BeNil())
		})

		It("points at DynamoDB Local", func() {
			SetEnvVars(map[string]string{
				envvar.JOB_LEDGER_ENABLED: "true",
				envvar.JOB_LEDGER_TABLE:   "",
			})

			ledgerConfig := ExpectType[config.LocalDynamo](dev.LedgerConfig())
			Expect(ledgerConfig.Host).To(Equal(dev.DynamoDBHost))
			Expect(ledgerConfig.TableName).To(Equal(config.DefaultLedgerTable))
		})

		It("honours a custom table name", func() {
			SetEnvVars(map[string]string{
				envvar.JOB_LEDGER_ENABLED: "true",
				envvar.JOB_LEDGER_TABLE:   "my-jobs",
			})

			ledgerConfig := ExpectType[config.LocalDynamo](dev.LedgerConfig())
			Expect(ledgerConfig.TableName).To(Equal("my-jobs"))
		})
	})

	Describe("CloudStorage", func() {
		BeforeEach(func() {
			SetEnvVars(map[string]string{
				envvar.REMOTE_STORAGE_ENABLED:           "true",
				envvar.REMOTE_STORAGE_BACKEND:           "",
				envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME: "",
			})
		})

		It("is nil unless remote storage is enabled", func() {
			SetEnvVars(map[string]string{envvar.REMOTE_STORAGE_ENABLED: "false"})
			Expect(dev.CloudStorage()).To(BeNil())
		})

		It("publishes to the GCS emulator", func() {
			Expect(dev.CloudStorage()).To(Equal(config.LocalGoogleCloudStorage{
				HostEndpoint: dev.FakeGCSHost,
				BucketName:   dev.FakeGCSBucket,
			}))
		})

		It("reads an S3 compatible host from the environment", func() {
			SetEnvVars(map[string]string{
				envvar.REMOTE_STORAGE_BACKEND: config.S3Backend,
				envvar.S3_BUCKET_NAME:         "stems",
				envvar.S3_ENDPOINT:            "http://localhost:9000",
				envvar.AWS_REGION:             "us-east-1",
				envvar.AWS_ACCESS_KEY_ID:      "minio",
				envvar.AWS_SECRET_ACCESS_KEY:  "minio123",
			})

			storageConfig := ExpectType[config.S3CloudStorage](dev.CloudStorage())
			Expect(storageConfig.Endpoint).To(Equal("http://localhost:9000"))
			Expect(storageConfig.BucketName).To(Equal("stems"))
		})
	})
})
