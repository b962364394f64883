package dispatch

import (
	"context"

	"github.com/cockroachdb/errors/domains"
	"github.com/veedubyou/stem-splitter/src/shared/job/entity"
)

var (
	ServerBusyMark     = domains.New("server_busy")
	DispatchFailedMark = domains.New("dispatch_failed")
)

// Dispatcher hands a created job to whatever will separate it. Dispatch must
// not block on the separation itself.
type Dispatcher interface {
	Dispatch(ctx context.Context, job jobentity.Job) error
	// Wait blocks until every job dispatched in this process has finished.
	// Jobs dispatched after Wait is called may be rejected.
	Wait()
}
