package events

import (
	"context"
	"strings"
	"time"

	"github.com/mmdatafocus/portal_backend/config"
	"github.com/sirupsen/logrus"
)

const (
	EventLeadCreated       = "lead.created"
	EventDocumentGenerated = "document.generated"
)

const (
	ProviderPubSub = "pubsub"
	ProviderNATS   = "nats"
	ProviderNoop   = "noop"
)

// Envelope is the JSON body every provider publishes.
type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type LeadCreated struct {
	LeadId  string `json:"lead_id"`
	Email   string `json:"email"`
	Service string `json:"service,omitempty"`
	Source  string `json:"source,omitempty"`
}

type DocumentGenerated struct {
	Category    string `json:"category"`
	ResourceId  int    `json:"resource_id"`
	OwnerId     string `json:"owner_id"`
	ObjectKey   string `json:"object_key"`
	DocumentUrl string `json:"document_url"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, event string, data any) error
	Close() error
}

func newEnvelope(event string, data any) Envelope {
	return Envelope{Event: event, OccurredAt: time.Now().UTC(), Data: data}
}

// Emit publishes and only logs failures. Domain operations never fail because
// an event could not be delivered.
func Emit(ctx context.Context, p Publisher, logger *logrus.Logger, event string, data any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event, data); err != nil && logger != nil {
		config.LogError(logger, "events", "Emit", "publish event", map[string]interface{}{"event": event}, err)
	}
}

// NewFromEnv picks the provider named by EVENTS_PROVIDER. An unusable
// provider degrades to the no-op publisher with a logged error.
func NewFromEnv(ctx context.Context, logger *logrus.Logger) Publisher {
	provider := strings.ToLower(config.GetEnv("EVENTS_PROVIDER", ProviderNoop))
	switch provider {
	case ProviderPubSub:
		p, err := NewPubSubPublisher(ctx, config.GetEnv("PUBSUB_TOPIC", ""))
		if err == nil {
			return p
		}
		config.LogError(logger, "events", "NewFromEnv", "pubsub publisher", nil, err)
	case ProviderNATS:
		p, err := NewNATSPublisher(config.GetEnv("NATS_URL", "nats://127.0.0.1:4222"))
		if err == nil {
			return p
		}
		config.LogError(logger, "events", "NewFromEnv", "nats publisher", nil, err)
	}
	return &NoopPublisher{}
}
