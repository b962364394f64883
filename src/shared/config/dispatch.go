package config

import "github.com/veedubyou/stem-splitter/src/shared/config/envvar"

const (
	LocalDispatch    = "local"
	RabbitMQDispatch = "rabbitmq"
)

type Dispatch interface {
	DispatchMode() string
}

var _ Dispatch = LocalPool{}

type LocalPool struct {
	MaxConcurrentJobs int64
}

func (LocalPool) DispatchMode() string { return LocalDispatch }

var _ Dispatch = RabbitMQ{}

type RabbitMQ struct {
	URL       string
	QueueName string
}

func (RabbitMQ) DispatchMode() string { return RabbitMQDispatch }

const (
	DefaultMaxConcurrentJobs = 2
	DefaultMaxUploadBytes    = 200 * 1024 * 1024
)

// DispatchFromEnv defaults to the in-process pool
func DispatchFromEnv() Dispatch {
	mode := envvar.GetOr(envvar.DISPATCH_MODE, LocalDispatch)

	switch mode {
	case LocalDispatch:
		return LocalPool{
			MaxConcurrentJobs: envvar.GetIntOr(envvar.MAX_CONCURRENT_JOBS, DefaultMaxConcurrentJobs),
		}

	case RabbitMQDispatch:
		return RabbitMQ{
			URL:       envvar.MustGet(envvar.RABBITMQ_URL),
			QueueName: envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
		}

	default:
		panic("Unrecognized dispatch mode: " + mode)
	}
}
