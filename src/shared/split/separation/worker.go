package separation

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/cockroachdb/errors/markers"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/entity"
	"github.com/veedubyou/stem-splitter/src/shared/cloud_storage/storagepath"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/ledger"
	"github.com/veedubyou/stem-splitter/src/shared/job/storage"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"github.com/veedubyou/stem-splitter/src/shared/lib/errors/mark"
	"github.com/veedubyou/stem-splitter/src/shared/split/splitter"
)

// Runner takes one job to a terminal status
type Runner interface {
	Run(ctx context.Context, job jobentity.Job) jobentity.Status
}

var _ Runner = Worker{}

// Worker drives a single job through processing -> completed|error.
// A nil uploader keeps stems local. A zero timeout lets spleeter run as long as it needs.
func NewWorker(
	store jobentity.Store,
	fileSplitter splitter.FileSplitter,
	uploader cloudentity.Uploader,
	pathGenerator storagepath.Generator,
	jobLedger ledger.Ledger,
	timeout time.Duration,
) Worker {
	if jobLedger == nil {
		jobLedger = ledger.NopLedger{}
	}

	return Worker{
		store:         store,
		splitter:      fileSplitter,
		uploader:      uploader,
		pathGenerator: pathGenerator,
		ledger:        jobLedger,
		timeout:       timeout,
	}
}

type Worker struct {
	store         jobentity.Store
	splitter      splitter.FileSplitter
	uploader      cloudentity.Uploader
	pathGenerator storagepath.Generator
	ledger        ledger.Ledger
	timeout       time.Duration
}

// Run never returns an error: every failure ends up in the job's error status
func (w Worker) Run(ctx context.Context, job jobentity.Job) jobentity.Status {
	logger := log.WithFields(log.Fields{
		"job_id":    job.ID,
		"stem_mode": job.StemMode,
	})

	err := w.store.SetStatus(ctx, job.ID, jobentity.ProcessingStatus)
	if err != nil {
		if markers.Is(err, jobstorage.InvalidTransitionMark) {
			logger.WithError(err).Warn("Job has already been picked up, skipping")
			return w.currentStatus(ctx, job.ID)
		}

		return w.fail(ctx, job, cerr.Wrap(err).Error("Failed to mark job as processing"))
	}

	logger.Info("Starting stem separation")

	if err := w.separate(ctx, job); err != nil {
		return w.fail(ctx, job, err)
	}

	if err := w.store.SetStatus(ctx, job.ID, jobentity.CompletedStatus); err != nil {
		return w.fail(ctx, job, cerr.Wrap(err).Error("Failed to mark job as completed"))
	}

	w.recordOutcome(ctx, job.ID, jobentity.CompletedStatus, "")
	logger.Info("Finished stem separation")
	return jobentity.CompletedStatus
}

func (w Worker) separate(ctx context.Context, job jobentity.Job) error {
	splitCtx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		splitCtx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	stems, err := w.splitter.SplitFile(splitCtx, job.InputPath, job.OutputDir, job.StemMode)
	if err != nil {
		return mark.Wrap(err, SeparationFailureMark, "Failed to separate stems")
	}

	if len(stems) == 0 {
		return mark.Message(SeparationFailureMark, "Separation finished without producing any stems")
	}

	if w.uploader == nil {
		return nil
	}

	if err := w.publish(ctx, job); err != nil {
		return mark.Wrap(err, UploadFailureMark, "Failed to publish stems to remote storage")
	}

	return nil
}

func (w Worker) publish(ctx context.Context, job jobentity.Job) error {
	files, err := jobstorage.ListAudioFiles(job.OutputDir)
	if err != nil {
		return cerr.Field("output_dir", job.OutputDir).
			Wrap(err).Error("Failed to list stems for upload")
	}

	for _, relativePath := range files {
		localPath := filepath.Join(job.OutputDir, filepath.FromSlash(relativePath))
		remoteKey := w.pathGenerator.GeneratePath(job.ID, relativePath)

		log.WithFields(log.Fields{
			"job_id":     job.ID,
			"local_path": localPath,
			"remote_key": remoteKey,
		}).Info("Uploading stem")

		if err := w.uploader.UploadFile(ctx, localPath, remoteKey); err != nil {
			return cerr.Fields(cerr.F{
				"local_path": localPath,
				"remote_key": remoteKey,
			}).Wrap(err).Error("Failed to upload stem")
		}
	}

	return nil
}

func (w Worker) fail(ctx context.Context, job jobentity.Job, err error) jobentity.Status {
	err = cerr.Fields(cerr.F{
		"job_id":    job.ID,
		"stem_mode": job.StemMode,
	}).Wrap(err).Error("Stem separation job failed")
	cerr.Log(err)

	details := fmt.Sprintf("%s\n\n%+v", err.Error(), err)
	if detailsErr := w.store.SetErrorDetails(ctx, job.ID, details); detailsErr != nil {
		cerr.Log(cerr.Wrap(detailsErr).Error("Failed to write error details"))
	}

	if statusErr := w.store.SetStatus(ctx, job.ID, jobentity.ErrorStatus); statusErr != nil {
		cerr.Log(cerr.Wrap(statusErr).Error("Failed to mark job as errored"))
	}

	w.recordOutcome(ctx, job.ID, jobentity.ErrorStatus, err.Error())
	return jobentity.ErrorStatus
}

func (w Worker) currentStatus(ctx context.Context, jobID string) jobentity.Status {
	report, err := w.store.GetReport(ctx, jobID)
	if err != nil {
		return jobentity.NoStatus
	}

	return report.Status
}

func (w Worker) recordOutcome(ctx context.Context, jobID string, status jobentity.Status, errorDetails string) {
	if err := w.ledger.RecordOutcome(ctx, jobID, status, errorDetails); err != nil {
		log.WithError(err).
			WithField("job_id", jobID).
			Warn("Failed to record job outcome in the ledger")
	}
}
