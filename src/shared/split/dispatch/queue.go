package dispatch

import (
	"context"

	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
	"github.com/veedubyou/stem-splitter/src/shared/job/message"
	"github.com/veedubyou/stem-splitter/src/shared/lib/errors/mark"
	"github.com/veedubyou/stem-splitter/src/shared/lib/rabbitmq"
)

var _ Dispatcher = QueueDispatcher{}

// QueueDispatcher leaves the separation to a worker process that shares the
// job directories and consumes the queue
func NewQueueDispatcher(publisher rabbitmq.Publisher) QueueDispatcher {
	return QueueDispatcher{
		publisher: publisher,
	}
}

type QueueDispatcher struct {
	publisher rabbitmq.Publisher
}

func (q QueueDispatcher) Dispatch(ctx context.Context, job jobentity.Job) error {
	msg, err := jobmessage.NewSplitJobMessage(job)
	if err != nil {
		return mark.Wrap(err, DispatchFailedMark, "Failed to create split job message")
	}

	if err := q.publisher.Publish(ctx, msg); err != nil {
		return mark.Wrap(err, DispatchFailedMark, "Failed to publish split job message")
	}

	return nil
}

func (QueueDispatcher) Wait() {}
