package dummy

import (
	"context"
	"sync"

	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/stem-splitter/src/shared/lib/rabbitmq"
)

var _ rabbitmq.Publisher = &RabbitMQ{}
var _ amqp091.Acknowledger = RabbitMQAcknowledger{}

// RabbitMQ is an in-memory queue that can stand in for both the publisher
// and the worker's message channel
type RabbitMQ struct {
	Unavailable    bool
	MessageChannel chan amqp091.Delivery

	lock        sync.Mutex
	ackCounter  int
	nackCounter int
	closed      bool
}

type RabbitMQAcknowledger struct {
	ack  func()
	nack func()
}

func NewRabbitMQ() *RabbitMQ {
	return &RabbitMQ{
		Unavailable:    false,
		MessageChannel: make(chan amqp091.Delivery, 100),
	}
}

func (r *RabbitMQ) Publish(_ context.Context, msg amqp091.Publishing) error {
	if r.Unavailable {
		return NetworkFailure
	}

	acknowledger := RabbitMQAcknowledger{
		ack: func() {
			r.lock.Lock()
			defer r.lock.Unlock()
			r.ackCounter++
		},
		nack: func() {
			r.lock.Lock()
			defer r.lock.Unlock()
			r.nackCounter++
		},
	}

	r.MessageChannel <- amqp091.Delivery{
		Acknowledger:    acknowledger,
		ContentType:     msg.ContentType,
		ContentEncoding: msg.ContentEncoding,
		DeliveryMode:    msg.DeliveryMode,
		Timestamp:       msg.Timestamp,
		Type:            msg.Type,
		Body:            msg.Body,
	}
	return nil
}

func (r *RabbitMQ) Consume(_ string, _ string, _ bool, _ bool, _ bool, _ bool, _ amqp091.Table) (<-chan amqp091.Delivery, error) {
	if r.Unavailable {
		return nil, NetworkFailure
	}

	return r.MessageChannel, nil
}

// Close ends the message stream, the way a closed channel ends a consumer
func (r *RabbitMQ) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.closed {
		r.closed = true
		close(r.MessageChannel)
	}

	return nil
}

func (r *RabbitMQ) AckCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.ackCounter
}

func (r *RabbitMQ) NackCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.nackCounter
}

func (r RabbitMQAcknowledger) Ack(tag uint64, multiple bool) error {
	r.ack()
	return nil
}

func (r RabbitMQAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	r.nack()
	return nil
}

func (r RabbitMQAcknowledger) Reject(tag uint64, requeue bool) error {
	r.nack()
	return nil
}
