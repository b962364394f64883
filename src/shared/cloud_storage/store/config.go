package store

import (
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/entity"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"google.golang.org/api/option"
)

// NewUploaderFromConfig returns a nil uploader when remote storage is off
func NewUploaderFromConfig(cloudConfig config.CloudStorage) (cloudentity.Uploader, error) {
	switch t := cloudConfig.(type) {
	case nil:
		return nil, nil

	case config.GoogleCloudStorage:
		return NewGoogleFileStore(t.BucketName, option.WithCredentialsJSON([]byte(t.SecretKey)))

	case config.LocalGoogleCloudStorage:
		return NewGoogleFileStore(t.BucketName,
			option.WithEndpoint(t.HostEndpoint),
			option.WithoutAuthentication())

	case config.S3CloudStorage:
		return NewS3FileStore(t)

	default:
		return nil, cerr.Field("bucket", cloudConfig.GetBucket()).
			Error("Unexpected cloud storage config type")
	}
}
