package diagnostics

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Report is the full record of a backend server fault. It never reaches the user.
type Report struct {
	RequestID    string    `json:"requestId"`
	Method       string    `json:"method"`
	Endpoint     string    `json:"endpoint"`
	Status       int       `json:"status"`
	RequestBody  string    `json:"requestBody,omitempty"`
	ResponseBody string    `json:"responseBody,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Sink receives server-fault reports. Implementations must not block the caller for long.
type Sink interface {
	Report(ctx context.Context, r Report)
}

type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Report(_ context.Context, r Report) {
	s.logger.Printf("backend fault: request=%s %s %s status=%d request_body=%q response_body=%q",
		r.RequestID, r.Method, r.Endpoint, r.Status, r.RequestBody, r.ResponseBody)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes reports as JSON messages keyed by endpoint. Write
// failures fall back to the logger.
type KafkaSink struct {
	writer messageWriter
	logger *log.Logger
}

func NewKafkaSink(topic string, logger *log.Logger, brokers ...string) *KafkaSink {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		Async:                  true,
	}
	return newKafkaSink(w, logger)
}

func newKafkaSink(w messageWriter, logger *log.Logger) *KafkaSink {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &KafkaSink{writer: w, logger: logger}
}

func (s *KafkaSink) Report(ctx context.Context, r Report) {
	payload, err := json.Marshal(r)
	if err != nil {
		s.logger.Printf("diagnostics: marshal report failed: %v", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(r.Endpoint),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("backend_fault")},
		},
	}
	if err := s.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		s.logger.Printf("diagnostics: publish failed: %v; report=%s", err, payload)
	}
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
