package jobentity

import "context"

type Store interface {
	CreateJob(ctx context.Context, jobID string, fileName string, contents []byte, stemMode StemMode) (Job, error)
	RemoveJob(ctx context.Context, jobID string) error
	LoadJob(ctx context.Context, jobID string, fileName string, stemMode StemMode) (Job, error)

	SetStatus(ctx context.Context, jobID string, status Status) error
	SetErrorDetails(ctx context.Context, jobID string, details string) error
	GetReport(ctx context.Context, jobID string) (Report, error)

	ArtifactPath(ctx context.Context, jobID string, relativePath string) (string, error)
}
