package config

import (
	"github.com/apex/log"
	"github.com/veedubyou/stem-splitter/src/shared/config/envvar"
)

const (
	GoogleBackend = "gcs"
	S3Backend     = "s3"
)

type CloudStorage interface {
	GetBucket() string
}

var _ CloudStorage = GoogleCloudStorage{}

type GoogleCloudStorage struct {
	SecretKey  string
	BucketName string
}

func (g GoogleCloudStorage) GetBucket() string {
	return g.BucketName
}

var _ CloudStorage = LocalGoogleCloudStorage{}

// LocalGoogleCloudStorage points at a GCS emulator such as fake-gcs-server
type LocalGoogleCloudStorage struct {
	HostEndpoint string
	BucketName   string
}

func (l LocalGoogleCloudStorage) GetBucket() string {
	return l.BucketName
}

var _ CloudStorage = S3CloudStorage{}

type S3CloudStorage struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// optional, for S3 compatible hosts
	Endpoint string
}

func (s S3CloudStorage) GetBucket() string {
	return s.BucketName
}

// CloudStorageFromEnv returns nil when remote publication is switched off.
// A missing bucket disables publication with a warning instead of failing startup.
func CloudStorageFromEnv() CloudStorage {
	if !envvar.GetBool(envvar.REMOTE_STORAGE_ENABLED) {
		log.Info("Remote storage is disabled, stems will only be kept locally")
		return nil
	}

	backend := envvar.GetOr(envvar.REMOTE_STORAGE_BACKEND, GoogleBackend)
	logger := log.WithField("backend", backend)

	switch backend {
	case GoogleBackend:
		bucket := envvar.GetOr(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME, "")
		if bucket == "" {
			logger.Warnf("%s is not set, remote storage is disabled", envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME)
			return nil
		}

		return GoogleCloudStorage{
			SecretKey:  envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
			BucketName: bucket,
		}

	case S3Backend:
		bucket := envvar.GetOr(envvar.S3_BUCKET_NAME, "")
		if bucket == "" {
			logger.Warnf("%s is not set, remote storage is disabled", envvar.S3_BUCKET_NAME)
			return nil
		}

		return S3CloudStorage{
			Region:          envvar.MustGet(envvar.AWS_REGION),
			AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
			SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
			BucketName:      bucket,
			Endpoint:        envvar.GetOr(envvar.S3_ENDPOINT, ""),
		}

	default:
		panic("Unrecognized remote storage backend: " + backend)
	}
}
