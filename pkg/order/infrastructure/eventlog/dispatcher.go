// Package eventlog provides a dispatcher that writes events to the log. It
// stands in for a broker in local runs.
package eventlog

import (
	"context"

	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/domain"
)

type Dispatcher struct {
	logger log.FieldLogger
}

func NewDispatcher(logger log.FieldLogger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Dispatch(_ context.Context, event domain.Event) error {
	fields := log.Fields{
		"eventType":   event.Type(),
		"aggregateId": event.AggregateID(),
		"occurredOn":  event.OccurredOn(),
	}
	for _, f := range event.Data() {
		fields["data."+f.Key] = f.Value
	}
	d.logger.WithFields(fields).Info("domain event")
	return nil
}
