package split

import (
	"context"

	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/message"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"github.com/veedubyou/stem-splitter/src/shared/split/separation"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

const JobType = jobmessage.SplitJobType

//counterfeiter:generate . SplitJobHandler
type SplitJobHandler interface {
	HandleSplitJob(message []byte) (jobentity.Status, error)
}

var _ SplitJobHandler = JobHandler{}

func NewJobHandler(store jobentity.Store, runner separation.Runner) JobHandler {
	return JobHandler{
		store:  store,
		runner: runner,
	}
}

type JobHandler struct {
	store  jobentity.Store
	runner separation.Runner
}

// HandleSplitJob only errors when the message can't be turned into a job.
// A job that fails to separate is reported through its status instead.
func (h JobHandler) HandleSplitJob(message []byte) (jobentity.Status, error) {
	params, err := jobmessage.ParseSplitJobParams(message)
	if err != nil {
		return jobentity.NoStatus, cerr.Wrap(err).Error("Failed to read split job message")
	}

	ctx := context.Background()
	errctx := cerr.Field("job_id", params.JobID)

	job, err := h.store.LoadJob(ctx, params.JobID, params.FileName, params.StemMode)
	if err != nil {
		return jobentity.NoStatus, errctx.Wrap(err).Error("Failed to load job from the shared job directories")
	}

	return h.runner.Run(ctx, job), nil
}
