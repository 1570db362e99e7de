package events

import (
	"context"
	"encoding/json"
	"errors"

	"cloud.google.com/go/pubsub"
	"github.com/mmdatafocus/portal_backend/config"
)

// PubSubPublisher sends every event to one topic; the event name travels as
// the "event" attribute so subscriptions can filter on it.
type PubSubPublisher struct {
	topic *pubsub.Topic
}

func NewPubSubPublisher(ctx context.Context, topicName string) (*PubSubPublisher, error) {
	if topicName == "" {
		return nil, errors.New("PUBSUB_TOPIC is required")
	}
	client, err := config.GetPubSubClient(ctx)
	if err != nil {
		return nil, err
	}
	return &PubSubPublisher{topic: client.Topic(topicName)}, nil
}

func (p *PubSubPublisher) Publish(ctx context.Context, event string, data any) error {
	msgJSON, err := json.Marshal(newEnvelope(event, data))
	if err != nil {
		return err
	}
	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       msgJSON,
		Attributes: map[string]string{"event": event},
	})
	_, err = result.Get(ctx)
	return err
}

func (p *PubSubPublisher) Close() error {
	p.topic.Stop()
	config.ClosePubSubClient()
	return nil
}
