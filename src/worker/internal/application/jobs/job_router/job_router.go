package job_router

import (
	"github.com/apex/log"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/stem-splitter/src/shared/lib/cerr"
	"github.com/veedubyou/stem-splitter/src/worker/internal/application/jobs/split"
)

func NewJobRouter(splitHandler split.SplitJobHandler) JobRouter {
	return JobRouter{
		splitHandler: splitHandler,
	}
}

type JobRouter struct {
	splitHandler split.SplitJobHandler
}

// HandleMessage errors for messages that should be dropped without a retry
func (j JobRouter) HandleMessage(message amqp091.Delivery) error {
	switch message.Type {
	case split.JobType:
		return j.handleSplitJob(message)

	default:
		return cerr.Field("message_type", message.Type).
			Error("Unrecognized message type")
	}
}

func (j JobRouter) handleSplitJob(message amqp091.Delivery) error {
	status, err := j.splitHandler.HandleSplitJob(message.Body)
	if err != nil {
		return cerr.Wrap(err).Error("Failed to handle split job")
	}

	log.WithField("status", status).Info("Split job finished")
	return nil
}
