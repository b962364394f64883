package separation

import "github.com/cockroachdb/errors/domains"

var (
	SeparationFailureMark = domains.New("separation_failure")
	UploadFailureMark     = domains.New("upload_failure")
)
