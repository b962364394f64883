package testing

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/onsi/gomega"
)

type RequestModifier func(r *http.Request)

type RequestModifiers []RequestModifier

func (r *RequestModifiers) Add(mods ...RequestModifier) {
	*r = append(*r, mods...)
}

func WithHeader(key string, value string) RequestModifier {
	return func(request *http.Request) {
		request.Header.Set(key, value)
	}
}

type UploadFile struct {
	FieldName string
	FileName  string
	Contents  []byte
}

// RequestFactory builds requests for the HTTP surface. Files and Fields are
// sent as a multipart form when either is set.
type RequestFactory struct {
	Method string
	Target string
	Files  []UploadFile
	Fields map[string]string
	Mods   RequestModifiers
}

func (r RequestFactory) body() (io.Reader, string) {
	if len(r.Files) == 0 && len(r.Fields) == 0 {
		return nil, ""
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, file := range r.Files {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())

		_, err = part.Write(file.Contents)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())
	}

	for key, value := range r.Fields {
		err := writer.WriteField(key, value)
		gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())
	}

	err := writer.Close()
	gomega.ExpectWithOffset(2, err).NotTo(gomega.HaveOccurred())

	return buf, writer.FormDataContentType()
}

func (r RequestFactory) make(reqMaker func(string, string, io.Reader) *http.Request) *http.Request {
	body, contentType := r.body()
	request := reqMaker(r.Method, r.Target, body)

	if contentType != "" {
		request.Header.Set(echo.HeaderContentType, contentType)
	}

	for _, mod := range r.Mods {
		mod(request)
	}

	return request
}

func (r RequestFactory) MakeFake() *http.Request {
	return r.make(httptest.NewRequest)
}

func (r RequestFactory) Do() (*http.Response, error) {
	makeRealRequest := func(method string, target string, body io.Reader) *http.Request {
		return ExpectSuccess(http.NewRequest(method, target, body))
	}

	req := r.make(makeRealRequest)
	return http.DefaultClient.Do(req)
}
