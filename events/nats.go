package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const natsSubjectPrefix = "portal."

// NATSPublisher publishes envelopes to "portal.<event>".
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("portal-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{conn: nc}, nil
}

func Subject(event string) string {
	return natsSubjectPrefix + event
}

func (p *NATSPublisher) Publish(ctx context.Context, event string, data any) error {
	payload, err := json.Marshal(newEnvelope(event, data))
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}
	return p.conn.Publish(Subject(event), payload)
}

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}
