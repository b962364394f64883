package joberrors

import "github.com/veedubyou/stem-splitter/src/server/internal/errors/api"

const (
	MissingFileCode      = api.ErrorCode("missing_file")
	InvalidFileTypeCode  = api.ErrorCode("invalid_file_type")
	InvalidStemModeCode  = api.ErrorCode("invalid_stem_mode")
	JobNotFoundCode      = api.ErrorCode("job_not_found")
	ArtifactNotFoundCode = api.ErrorCode("artifact_not_found")
	ServerBusyCode       = api.ErrorCode("server_busy")
	DispatchFailedCode   = api.ErrorCode("dispatch_failed")
)
