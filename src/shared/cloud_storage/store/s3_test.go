package store_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/store"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	. "github.com/veedubyou/stem-splitter/src/shared/testing"
)

type receivedUpload struct {
	Method string
	Path   string
	Body   []byte
}

var _ = Describe("S3FileStore", func() {
	var (
		ctx        context.Context
		s3Server   *httptest.Server
		uploadLock sync.Mutex
		uploads    []receivedUpload
		statusCode int
		fileStore  store.S3FileStore
		localPath  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		uploads = nil
		statusCode = http.StatusOK

		s3Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)

			uploadLock.Lock()
			uploads = append(uploads, receivedUpload{Method: r.Method, Path: r.URL.Path, Body: body})
			uploadLock.Unlock()

			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(statusCode)
		}))
		DeferCleanup(s3Server.Close)

		fileStore = ExpectSuccess(store.NewS3FileStore(config.S3CloudStorage{
			Region:          "us-east-1",
			AccessKeyID:     "local",
			SecretAccessKey: "local",
			BucketName:      "stem-splitter-test",
			Endpoint:        s3Server.URL,
		}))

		localPath = filepath.Join(MakeTempDir(), "song.mp3")
		Expect(os.WriteFile(localPath, []byte("drums only"), 0o644)).To(Succeed())
	})

	It("puts the object into the bucket under the key", func() {
		Expect(fileStore.UploadFile(ctx, localPath, "stems/job/drums/song.mp3")).To(Succeed())

		Expect(uploads).To(HaveLen(1))
		Expect(uploads[0].Method).To(Equal(http.MethodPut))
		Expect(uploads[0].Path).To(Equal("/stem-splitter-test/stems/job/drums/song.mp3"))
		Expect(uploads[0].Body).To(Equal([]byte("drums only")))
	})

	It("reports a rejected upload", func() {
		statusCode = http.StatusForbidden
		Expect(fileStore.UploadFile(ctx, localPath, "stems/job/drums/song.mp3")).NotTo(Succeed())
	})
})
