package application_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/server/application"
	"github.com/veedubyou/stem-splitter/src/shared/config"
	"github.com/veedubyou/stem-splitter/src/shared/testing"
	"github.com/veedubyou/stem-splitter/src/shared/testing/dummy"
)

var _ = Describe("App", func() {
	var (
		app     *application.App
		server  *httptest.Server
		baseURL string
	)

	BeforeEach(func() {
		root := testing.MakeTempDir()

		app = testing.ExpectSuccess(application.NewApp(application.Config{
			UploadDir:          filepath.Join(root, "uploads"),
			OutputDir:          filepath.Join(root, "outputs"),
			SpleeterBinPath:    "spleeter",
			SpleeterWorkingDir: filepath.Join(root, "spleeter"),
			Executor:           dummy.NewDummySpleeterExecutor(),
			Dispatch:           config.LocalPool{MaxConcurrentJobs: 2},
			MaxUploadBytes:     1024,
			CORSAllowedOrigins: []string{"*"},
		}))

		server = httptest.NewServer(app.Handler())
		baseURL = server.URL

		DeferCleanup(func() {
			server.Close()
			Expect(app.Stop()).To(Succeed())
		})
	})

	var get = func(path string) *http.Response {
		return testing.ExpectSuccess(testing.RequestFactory{
			Method: "GET",
			Target: baseURL + path,
		}.Do())
	}

	var readBody = func(response *http.Response) []byte {
		defer response.Body.Close()
		return testing.ExpectSuccess(io.ReadAll(response.Body))
	}

	It("answers the health check", func() {
		response := get("/health-check")
		Expect(response.StatusCode).To(Equal(http.StatusOK))
	})

	It("separates an upload end to end", func() {
		response := testing.ExpectSuccess(testing.RequestFactory{
			Method: "POST",
			Target: baseURL + "/upload",
			Files: []testing.UploadFile{{
				FieldName: "file",
				FileName:  "song.mp3",
				Contents:  []byte("cool_jamz"),
			}},
			Fields: map[string]string{"stems": "2stems"},
		}.Do())
		Expect(response.StatusCode).To(Equal(http.StatusOK))

		defer response.Body.Close()
		body := testing.DecodeJSON[map[string]any](response.Body)
		jobID := testing.ExpectType[string](body["job_id"])

		Eventually(func() any {
			statusResponse := get("/status/" + jobID)
			defer statusResponse.Body.Close()
			return testing.DecodeJSON[map[string]any](statusResponse.Body)["status"]
		}).Should(Equal("completed"))

		download := get("/download/" + jobID + "/accompaniment/song.mp3")
		Expect(download.StatusCode).To(Equal(http.StatusOK))
		Expect(string(readBody(download))).To(Equal("cool_jamz-accompaniment"))
	})

	DescribeTable("serves every file that the status lists",
		func(fileName string) {
			response := testing.ExpectSuccess(testing.RequestFactory{
				Method: "POST",
				Target: baseURL + "/upload",
				Files: []testing.UploadFile{{
					FieldName: "file",
					FileName:  fileName,
					Contents:  []byte("cool_jamz"),
				}},
			}.Do())
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			defer response.Body.Close()
			jobID := testing.ExpectType[string](testing.DecodeJSON[map[string]any](response.Body)["job_id"])

			var status map[string]any
			Eventually(func() any {
				statusResponse := get("/status/" + jobID)
				defer statusResponse.Body.Close()
				status = testing.DecodeJSON[map[string]any](statusResponse.Body)
				return status["status"]
			}).Should(Equal("completed"))

			files := testing.ExpectType[[]any](status["files"])
			Expect(files).To(HaveLen(2))

			for _, file := range files {
				relativePath := testing.ExpectType[string](file)
				escapedPath := (&url.URL{Path: relativePath}).EscapedPath()

				download := get("/download/" + jobID + "/" + escapedPath)
				Expect(download.StatusCode).To(Equal(http.StatusOK), relativePath)
				Expect(string(readBody(download))).To(HavePrefix("cool_jamz-"))
			}
		},
		Entry("a plain name", "song.mp3"),
		Entry("a percent sign", "100%.mp3"),
		Entry("something that looks escaped", "a%41b.mp3"),
		Entry("a space", "my song.mp3"),
	)

	It("rejects bodies over the upload limit", func() {
		response := testing.ExpectSuccess(testing.RequestFactory{
			Method: "POST",
			Target: baseURL + "/upload",
			Files: []testing.UploadFile{{
				FieldName: "file",
				FileName:  "song.mp3",
				Contents:  make([]byte, 4096),
			}},
		}.Do())
		readBody(response)

		Expect(response.StatusCode).To(Equal(http.StatusRequestEntityTooLarge))
	})

	It("returns not_found for unknown jobs", func() {
		response := get("/status/" + "6f1c2a8e-0d55-4a39-9d7b-3f2f8a6e2b10")
		Expect(response.StatusCode).To(Equal(http.StatusNotFound))
		readBody(response)
	})
})
