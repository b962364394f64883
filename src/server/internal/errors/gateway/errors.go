package gateway

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/veedubyou/stem-splitter/src/server/api_error"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/api"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/errors"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:           http.StatusInternalServerError,
	joberrors.MissingFileCode:      http.StatusBadRequest,
	joberrors.InvalidFileTypeCode:  http.StatusBadRequest,
	joberrors.InvalidStemModeCode:  http.StatusBadRequest,
	joberrors.JobNotFoundCode:      http.StatusNotFound,
	joberrors.ArtifactNotFoundCode: http.StatusNotFound,
	joberrors.ServerBusyCode:       http.StatusServiceUnavailable,
	joberrors.DispatchFailedCode:   http.StatusInternalServerError,
}

func StatusCode(errorCode api.ErrorCode) (int, bool) {
	statusCode, ok := httpStatusCodeMap[errorCode]
	return statusCode, ok
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode, ok := StatusCode(err.ErrorCode)
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", err.ErrorCode)
		panic(msg)
	}

	if statusCode >= http.StatusInternalServerError {
		log.WithField("code", err.ErrorCode).
			WithError(err.InternalError).
			Error(err.UserMessage)
	}

	return c.JSON(statusCode, api_error.JSONAPIError{
		Code:         string(err.ErrorCode),
		Msg:          err.UserMessage,
		ErrorDetails: err.Error(),
	})
}
