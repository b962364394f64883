package jobusecase

import (
	"context"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/veedubyou/stem-splitter/src/server/internal/errors/api"
	"github.com/veedubyou/stem-splitter/src/server/internal/job/errors"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/ledger"
	"github.com/veedubyou/stem-splitter/src/shared/job/storage"
	"github.com/veedubyou/stem-splitter/src/shared/split/dispatch"
)

type Usecase struct {
	store      jobentity.Store
	dispatcher dispatch.Dispatcher
	ledger     ledger.Ledger
}

func NewUsecase(store jobentity.Store, dispatcher dispatch.Dispatcher, jobLedger ledger.Ledger) Usecase {
	if jobLedger == nil {
		jobLedger = ledger.NopLedger{}
	}

	return Usecase{
		store:      store,
		dispatcher: dispatcher,
		ledger:     jobLedger,
	}
}

// Submit creates the job and hands it off without waiting for the separation
func (u Usecase) Submit(ctx context.Context, fileName string, contents []byte, stemMode string) (string, *api.Error) {
	if fileName == "" {
		return "", api.CommitError(errors.New("No file was included in the upload"),
			joberrors.MissingFileCode,
			"No file was uploaded")
	}

	if !jobentity.IsAllowedFile(fileName) {
		return "", api.CommitError(errors.Newf("File %q does not have an allowed extension", fileName),
			joberrors.InvalidFileTypeCode,
			"Invalid file type. Allowed types: mp3, wav, flac, ogg, m4a, wma")
	}

	mode, ok := jobentity.ParseStemMode(stemMode)
	if !ok {
		return "", api.CommitError(errors.Newf("Stem mode %q is not recognized", stemMode),
			joberrors.InvalidStemModeCode,
			"Invalid stem mode. Allowed modes: 2stems, 4stems, 5stems")
	}

	jobID := jobentity.NewJobID()
	logger := log.WithFields(log.Fields{
		"job_id":    jobID,
		"file_name": fileName,
		"stem_mode": mode,
	})

	job, err := u.store.CreateJob(ctx, jobID, fileName, contents, mode)
	if err != nil {
		_ = u.store.RemoveJob(ctx, jobID)
		return "", api.CommitError(errors.Wrap(err, "Failed to create job"),
			api.DefaultErrorCode,
			"Unknown Error: Failed to save the uploaded file")
	}

	if err := u.ledger.RecordSubmission(ctx, job); err != nil {
		logger.WithError(err).Warn("Failed to record job submission in the ledger")
	}

	if err := u.dispatcher.Dispatch(ctx, job); err != nil {
		return "", u.abandon(ctx, job, err)
	}

	logger.Info("Job submitted")
	return jobID, nil
}

// abandon removes a job that was created but could not be dispatched,
// so a rejected submission leaves nothing behind
func (u Usecase) abandon(ctx context.Context, job jobentity.Job, dispatchErr error) *api.Error {
	dispatchErr = errors.Wrap(dispatchErr, "Failed to dispatch job")

	if err := u.store.RemoveJob(ctx, job.ID); err != nil {
		log.WithError(err).
			WithField("job_id", job.ID).
			Error("Failed to remove undispatched job")
	}

	if err := u.ledger.RecordOutcome(ctx, job.ID, jobentity.ErrorStatus, dispatchErr.Error()); err != nil {
		log.WithError(err).
			WithField("job_id", job.ID).
			Warn("Failed to record dispatch failure in the ledger")
	}

	switch {
	case markers.Is(dispatchErr, dispatch.ServerBusyMark):
		return api.CommitError(dispatchErr,
			joberrors.ServerBusyCode,
			"The server is busy separating other files. Please try again later")

	case markers.Is(dispatchErr, dispatch.DispatchFailedMark):
		return api.CommitError(dispatchErr,
			joberrors.DispatchFailedCode,
			"Failed to start processing the file. Please try again later")

	default:
		return api.CommitError(dispatchErr,
			api.DefaultErrorCode,
			"Unknown Error: Failed to start processing the file")
	}
}

func (u Usecase) GetStatus(ctx context.Context, jobID string) (jobentity.Report, *api.Error) {
	report, err := u.store.GetReport(ctx, jobID)
	if err != nil {
		err = errors.Wrap(err, "Failed to get job report")
		if markers.Is(err, jobstorage.JobNotFoundMark) {
			return jobentity.Report{}, api.CommitError(err,
				joberrors.JobNotFoundCode,
				"No job exists for this ID")
		}

		return jobentity.Report{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Unknown Error: Failed to read job status")
	}

	return report, nil
}

// FetchArtifact resolves a produced file to its absolute path. Paths that
// leave the job's output directory are reported as not found.
func (u Usecase) FetchArtifact(ctx context.Context, jobID string, relativePath string) (string, *api.Error) {
	path, err := u.store.ArtifactPath(ctx, jobID, relativePath)
	if err != nil {
		err = errors.Wrap(err, "Failed to resolve artifact")
		if markers.Is(err, jobstorage.ArtifactNotFoundMark) {
			return "", api.CommitError(err,
				joberrors.ArtifactNotFoundCode,
				"File not found")
		}

		return "", api.CommitError(err,
			api.DefaultErrorCode,
			"Unknown Error: Failed to find the file")
	}

	return path, nil
}
