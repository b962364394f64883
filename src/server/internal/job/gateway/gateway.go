package jobgateway

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/api"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/gateway"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/errors"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/usecase"
	"github.com/veedubyou/stem-splitter/src/server/internal/lib/request"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
)

const (
	FileField  = "file"
	StemsField = "stems"
)

type UploadResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type Gateway struct {
	usecase jobusecase.Usecase
}

func NewGateway(usecase jobusecase.Usecase) Gateway {
	return Gateway{
		usecase: usecase,
	}
}

func (g Gateway) Upload(c echo.Context) error {
	ctx := request.Context(c)

	fileName, contents, apiErr := readUpload(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	jobID, apiErr := g.usecase.Submit(ctx, fileName, contents, c.FormValue(StemsField))
	if apiErr != nil {
		apiErr = api.WrapError(apiErr, "Failed to submit job")
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		JobID:  jobID,
		Status: string(jobentity.ProcessingStatus),
	})
}

func readUpload(c echo.Context) (string, []byte, *api.Error) {
	missingFile := func(err error) (string, []byte, *api.Error) {
		return "", nil, api.CommitError(errors.Wrap(err, "Failed to read the uploaded file"),
			joberrors.MissingFileCode,
			"No file was uploaded")
	}

	fileHeader, err := c.FormFile(FileField)
	if err != nil {
		return missingFile(err)
	}

	if fileHeader.Filename == "" {
		return missingFile(errors.New("Uploaded file has no name"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return missingFile(err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return missingFile(err)
	}

	return fileHeader.Filename, contents, nil
}

func (g Gateway) GetStatus(c echo.Context, jobID string) error {
	ctx := request.Context(c)

	report, apiErr := g.usecase.GetStatus(ctx, jobID)
	if apiErr != nil {
		if apiErr.ErrorCode == joberrors.JobNotFoundCode {
			return c.JSON(http.StatusNotFound, map[string]any{
				"status": "not_found",
			})
		}

		apiErr = api.WrapError(apiErr, "Failed to get job status")
		return gateway.ErrorResponse(c, apiErr)
	}

	body := map[string]any{
		"status": report.Status,
	}

	switch report.Status {
	case jobentity.CompletedStatus:
		body["files"] = report.Files
	case jobentity.ErrorStatus:
		if report.ErrorDetails != "" {
			body["error_details"] = report.ErrorDetails
		}
	}

	return c.JSON(http.StatusOK, body)
}

// Download expects relativePath already unescaped, as echo hands out route params
func (g Gateway) Download(c echo.Context, jobID string, relativePath string) error {
	ctx := request.Context(c)

	path, apiErr := g.usecase.FetchArtifact(ctx, jobID, relativePath)
	if apiErr != nil {
		apiErr = api.WrapError(apiErr, "Failed to fetch artifact")
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.Attachment(path, filepath.Base(path))
}
