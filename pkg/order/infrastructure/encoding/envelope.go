// Package encoding turns domain events into broker messages.
package encoding

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"orderservice/pkg/common/domain"
)

const (
	JSON     = "json"
	Protobuf = "protobuf"

	ContentTypeJSON     = "application/json"
	ContentTypeProtobuf = "application/x-protobuf"
)

var ErrUnknownEncoding = errors.New("unknown event encoding")

// Message is an encoded event ready for a broker.
type Message struct {
	ID          string
	Key         string
	Type        string
	ContentType string
	OccurredOn  time.Time
	Body        []byte
}

type Encoder interface {
	Encode(event domain.Event) (Message, error)
}

func NewEncoder(name string) (Encoder, error) {
	switch name {
	case JSON, "":
		return jsonEncoder{}, nil
	case Protobuf:
		return protobufEncoder{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", name)
	}
}

type envelope struct {
	EventID     string           `json:"eventId"`
	EventType   string           `json:"eventType"`
	AggregateID string           `json:"aggregateId"`
	OccurredOn  time.Time        `json:"occurredOn"`
	EventData   domain.EventData `json:"eventData"`
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(event domain.Event) (Message, error) {
	msg := newMessage(event, ContentTypeJSON)
	body, err := json.Marshal(envelope{
		EventID:     msg.ID,
		EventType:   event.Type(),
		AggregateID: msg.Key,
		OccurredOn:  msg.OccurredOn,
		EventData:   event.Data(),
	})
	if err != nil {
		return Message{}, errors.Wrapf(err, "encode %s", event.Type())
	}
	msg.Body = body
	return msg, nil
}

type protobufEncoder struct{}

// Encode writes a google.protobuf.Struct. Struct fields are unordered, so
// consumers that need eventData order must use JSON.
func (protobufEncoder) Encode(event domain.Event) (Message, error) {
	msg := newMessage(event, ContentTypeProtobuf)
	data := make(map[string]interface{}, len(event.Data()))
	for _, f := range event.Data() {
		data[f.Key] = protoValue(f.Value)
	}
	payload, err := structpb.NewStruct(map[string]interface{}{
		"eventId":     msg.ID,
		"eventType":   event.Type(),
		"aggregateId": msg.Key,
		"occurredOn":  msg.OccurredOn.Format(time.RFC3339Nano),
		"eventData":   data,
	})
	if err != nil {
		return Message{}, errors.Wrapf(err, "encode %s", event.Type())
	}
	body, err := proto.Marshal(payload)
	if err != nil {
		return Message{}, errors.Wrapf(err, "encode %s", event.Type())
	}
	msg.Body = body
	return msg, nil
}

// DecodeProtobuf is the inverse of the protobuf encoder.
func DecodeProtobuf(body []byte) (map[string]interface{}, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "decode event")
	}
	return payload.AsMap(), nil
}

func newMessage(event domain.Event, contentType string) Message {
	return Message{
		ID:          uuid.NewString(),
		Key:         event.AggregateID().String(),
		Type:        event.Type(),
		ContentType: contentType,
		OccurredOn:  event.OccurredOn().UTC(),
	}
}

// protoValue maps values structpb cannot take to strings.
func protoValue(v interface{}) interface{} {
	switch value := v.(type) {
	case nil, bool, string, int, int32, int64, uint, uint32, uint64, float32, float64:
		return value
	case time.Time:
		return value.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
