package gateway_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/api"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/gateway"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/errors"
	. "github.com/veedubyou/stem-splitter/src/shared/testing"
)

var _ = Describe("Gateway errors", func() {
	It("finds the job error codes", func() {
		Expect(allErrorCodes).To(ContainElements(
			api.DefaultErrorCode,
			joberrors.InvalidFileTypeCode,
			joberrors.ServerBusyCode,
		))
	})

	It("maps every error code to an HTTP status", func() {
		for _, errorCode := range allErrorCodes {
			_, ok := gateway.StatusCode(errorCode)
			Expect(ok).To(BeTrue(), "error code %s has no status mapping", errorCode)
		}
	})

	It("renders the error as JSON", func() {
		recorder := httptest.NewRecorder()
		c := PrepareEchoContext(httptest.NewRequest(http.MethodGet, "/", nil), recorder)

		apiErr := api.CommitError(errors.New("busy busy"), joberrors.ServerBusyCode, "Try again later")
		Expect(gateway.ErrorResponse(c, apiErr)).To(Succeed())

		Expect(recorder.Code).To(Equal(http.StatusServiceUnavailable))
		body := DecodeJSONError(recorder.Body)
		Expect(body.Code).To(Equal("server_busy"))
		Expect(body.Msg).To(Equal("Try again later"))
		Expect(body.ErrorDetails).To(Equal("busy busy"))
	})

	It("refuses unmapped codes", func() {
		recorder := httptest.NewRecorder()
		c := PrepareEchoContext(httptest.NewRequest(http.MethodGet, "/", nil), recorder)

		apiErr := api.CommitError(errors.New("?"), api.ErrorCode("made_up"), "?")
		Expect(func() { _ = gateway.ErrorResponse(c, apiErr) }).To(Panic())
	})
})
