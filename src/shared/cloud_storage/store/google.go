package store

import (
	"context"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/entity"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"google.golang.org/api/option"
)

var _ cloudentity.Uploader = GoogleFileStore{}

func NewGoogleFileStore(bucketName string, options ...option.ClientOption) (GoogleFileStore, error) {
	client, err := storage.NewClient(context.Background(), options...)
	if err != nil {
		return GoogleFileStore{}, cerr.Wrap(err).Error("Failed to create cloud storage client")
	}

	return NewGoogleFileStoreFromClient(client, bucketName), nil
}

func NewGoogleFileStoreFromClient(client *storage.Client, bucketName string) GoogleFileStore {
	return GoogleFileStore{
		storageClient: client,
		bucketName:    bucketName,
	}
}

type GoogleFileStore struct {
	storageClient *storage.Client
	bucketName    string
}

func (g GoogleFileStore) UploadFile(ctx context.Context, localPath string, remoteKey string) error {
	errctx := cerr.Fields(cerr.F{
		"local_path": localPath,
		"remote_key": remoteKey,
		"bucket":     g.bucketName,
	})

	file, err := os.Open(localPath)
	if err != nil {
		return errctx.Wrap(err).Error("Failed to open local file")
	}
	defer file.Close()

	// cancelling before Close abandons the upload instead of finalizing a partial object
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := g.storageClient.Bucket(g.bucketName).Object(remoteKey).NewWriter(ctx)

	if _, err := io.Copy(writer, file); err != nil {
		cancel()
		return errctx.Wrap(err).Error("Failed to write file contents to cloud storage")
	}

	if err := writer.Close(); err != nil {
		return errctx.Wrap(err).Error("Failed to finalize cloud storage object")
	}

	return nil
}
