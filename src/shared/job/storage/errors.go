package jobstorage

import "github.com/cockroachdb/errors/domains"

var (
	JobNotFoundMark       = domains.New("job_not_found")
	ArtifactNotFoundMark  = domains.New("artifact_not_found")
	InvalidTransitionMark = domains.New("invalid_status_transition")
	DefaultErrorMark      = domains.New("default_error")
)
