package dummy

import (
	"context"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/entity"
)

var _ cloudentity.Uploader = &Uploader{}

type Uploader struct {
	Unavailable bool

	lock  sync.Mutex
	files map[string][]byte
}

func NewDummyUploader() *Uploader {
	return &Uploader{
		files: map[string][]byte{},
	}
}

func (u *Uploader) UploadFile(_ context.Context, localPath string, remoteKey string) error {
	if u.Unavailable {
		return NetworkFailure
	}

	contents, err := os.ReadFile(localPath)
	if err != nil {
		return errors.Wrap(err, "Failed to read local file")
	}

	u.lock.Lock()
	defer u.lock.Unlock()
	u.files[remoteKey] = contents
	return nil
}

func (u *Uploader) Keys() []string {
	u.lock.Lock()
	defer u.lock.Unlock()

	keys := []string{}
	for key := range u.files {
		keys = append(keys, key)
	}

	return keys
}

func (u *Uploader) GetFile(remoteKey string) ([]byte, bool) {
	u.lock.Lock()
	defer u.lock.Unlock()
	contents, ok := u.files[remoteKey]
	return contents, ok
}
