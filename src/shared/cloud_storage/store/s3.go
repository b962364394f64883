package store

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/entity"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
)

var _ cloudentity.Uploader = S3FileStore{}

func NewS3FileStore(s3Config config.S3CloudStorage) (S3FileStore, error) {
	awsConfig := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(
			s3Config.AccessKeyID,
			s3Config.SecretAccessKey,
			"",
		)).
		WithRegion(s3Config.Region)

	if s3Config.Endpoint != "" {
		awsConfig = awsConfig.
			WithEndpoint(s3Config.Endpoint).
			WithS3ForcePathStyle(true)
	}

	awsSession, err := session.NewSession(awsConfig)
	if err != nil {
		return S3FileStore{}, cerr.Wrap(err).Error("Failed to create AWS session")
	}

	return S3FileStore{
		uploader:   s3manager.NewUploader(awsSession),
		bucketName: s3Config.BucketName,
	}, nil
}

type S3FileStore struct {
	uploader   *s3manager.Uploader
	bucketName string
}

func (s S3FileStore) UploadFile(ctx context.Context, localPath string, remoteKey string) error {
	errctx := cerr.Fields(cerr.F{
		"local_path": localPath,
		"remote_key": remoteKey,
		"bucket":     s.bucketName,
	})

	file, err := os.Open(localPath)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to open local file")
	}
	defer file.Close()

	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(remoteKey),
		Body:   file,
	})
	if err != nil {
		return errctx.Wrap(err).Error("Failed to upload file to S3")
	}

	return nil
}
