package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"orderservice/pkg/common/domain"
	"orderservice/pkg/order/infrastructure/encoding"
	"orderservice/pkg/order/infrastructure/eventlog"
	"orderservice/pkg/order/infrastructure/kafka"
	"orderservice/pkg/order/infrastructure/rabbitmq"
)

var errUnknownBroker = errors.New("unknown event broker")

func newDispatcher(cnf *config, logger log.FieldLogger) (domain.EventDispatcher, func() error, error) {
	if cnf.EventBroker == "log" || cnf.EventBroker == "" {
		return eventlog.NewDispatcher(logger), func() error { return nil }, nil
	}

	encoder, err := encoding.NewEncoder(cnf.EventEncoding)
	if err != nil {
		return nil, nil, err
	}
	switch cnf.EventBroker {
	case "rabbitmq":
		publisher, err := rabbitmq.Dial(cnf.AMQPURL, cnf.AMQPExchange, encoder, logger)
		if err != nil {
			return nil, nil, err
		}
		return publisher, publisher.Close, nil
	case "kafka":
		w := kafka.NewWriter(kafka.ParseBrokers(cnf.KafkaBrokers), cnf.KafkaTopic)
		publisher := kafka.NewPublisher(w, encoder, logger)
		return publisher, publisher.Close, nil
	default:
		return nil, nil, errors.Wrap(errUnknownBroker, cnf.EventBroker)
	}
}
