package remp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultEventSubject is the NATS subject used when none is given.
const DefaultEventSubject = "remp.client.requests"

// EventPublisher publishes raw messages. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// RequestEvent describes one completed call.
type RequestEvent struct {
	RequestID  string    `json:"request_id,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConnectNATS opens a NATS connection suitable for EventInterceptor.
func ConnectNATS(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{nats.Name("remp-client")}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return conn, nil
}

// EventInterceptor publishes a RequestEvent for every completed call.
// Pair it with RequestIDInterceptor and MetricsRequestInterceptor to fill the
// request ID and duration fields.
func EventInterceptor(publisher EventPublisher, subject string) ResponseInterceptor {
	if subject == "" {
		subject = DefaultEventSubject
	}

	return func(ctx context.Context, req *Request, resp *Response) error {
		event := RequestEvent{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Timestamp:  time.Now().UTC(),
		}

		if id, ok := req.Metadata[MetadataRequestID].(string); ok {
			event.RequestID = id
		}

		if latency, ok := elapsed(req); ok {
			event.DurationMS = latency.Milliseconds()
		}

		if resp.Error != nil {
			event.Error = resp.Error.Error()
		}

		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encoding request event: %w", err)
		}

		err = publisher.Publish(subject, data)
		if err != nil {
			return fmt.Errorf("publishing request event: %w", err)
		}

		return nil
	}
}
