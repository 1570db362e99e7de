package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(ctx context.Context, event string, data any) error {
	f.calls++
	return errors.New("broker unavailable")
}

func (f *failingPublisher) Close() error { return nil }

func TestEmit_LogsAndSwallowsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	p := &failingPublisher{}
	Emit(context.Background(), p, logger, EventLeadCreated, LeadCreated{LeadId: "lead_1"})

	assert.Equal(t, 1, p.calls)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "broker unavailable", line["msg"])
	assert.Equal(t, "events", line["module"])
}

func TestEmit_NilPublisher(t *testing.T) {
	Emit(context.Background(), nil, nil, EventDocumentGenerated, nil)
}

func TestSubject(t *testing.T) {
	if got := Subject(EventLeadCreated); got != "portal.lead.created" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestNewFromEnv_DefaultsToNoop(t *testing.T) {
	t.Setenv("EVENTS_PROVIDER", "")
	p := NewFromEnv(context.Background(), logrus.New())
	_, ok := p.(*NoopPublisher)
	assert.True(t, ok)
}

func TestEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(newEnvelope(EventLeadCreated, LeadCreated{LeadId: "lead_x", Email: "a@b.c"}))
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "lead.created", m["event"])
	assert.Equal(t, "lead_x", m["data"].(map[string]any)["lead_id"])
	assert.Contains(t, m, "occurred_at")
}
