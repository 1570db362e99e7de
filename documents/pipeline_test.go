package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mmdatafocus/portal_backend/events"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/mmdatafocus/portal_backend/storage"
	"github.com/mmdatafocus/portal_backend/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) Render(_ context.Context, doc Document) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + doc.Title), nil
}

type putCall struct {
	key  string
	data []byte
	opts storage.PutOptions
}

type fakeStore struct {
	err  error
	puts []putCall
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte, opts storage.PutOptions) (*storage.PutResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, putCall{key: key, data: data, opts: opts})
	return &storage.PutResult{Key: key, URL: "https://cdn.example/" + key}, nil
}

type fakeWriteBack struct {
	mu    sync.Mutex
	err   error
	calls int
	urls  map[int]string
	owner string
}

func (f *fakeWriteBack) SetDocumentUrl(_ context.Context, id int, ownerID string, url string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.urls == nil {
		f.urls = map[int]string{}
	}
	f.urls[id] = url
	f.owner = ownerID
	return nil
}

type fakeLocker struct {
	err      error
	keys     []string
	released int
}

func (f *fakeLocker) Obtain(_ context.Context, key string, _ time.Duration) (func(), error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	return func() { f.released++ }, nil
}

type recordingPublisher struct {
	events []string
}

func (r *recordingPublisher) Publish(_ context.Context, event string, _ any) error {
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func testLogger(buf *bytes.Buffer) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(buf)
	return l
}

func fixedClock(ts time.Time) Option {
	return WithClock(func() time.Time { return ts })
}

var sampleContract = models.Contract{ID: 7, OwnerId: "alice", ContractNumber: "C-0007", Title: "Website build"}

func TestGenerate_Success(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	wb := &fakeWriteBack{}
	pub := &recordingPublisher{}
	at := time.UnixMilli(1700000000123)
	p := NewPipeline(&fakeRenderer{}, store, wb, testLogger(&buf), fixedClock(at), WithPublisher(pub))

	res, err := p.Generate(context.Background(), sampleContract)
	require.NoError(t, err)

	assert.Equal(t, "contracts/C-0007-1700000000123.pdf", res.ObjectKey)
	assert.Equal(t, "https://cdn.example/contracts/C-0007-1700000000123.pdf", res.DocumentUrl)
	require.Len(t, store.puts, 1)
	assert.Equal(t, storage.AccessPublic, store.puts[0].opts.Access)
	assert.Equal(t, "application/pdf", store.puts[0].opts.ContentType)
	assert.Equal(t, res.DocumentUrl, wb.urls[7])
	assert.Equal(t, "alice", wb.owner)
	assert.Equal(t, []string{events.EventDocumentGenerated}, pub.events)
}

func TestGenerate_RenderFailureTouchesNothing(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	wb := &fakeWriteBack{}
	p := NewPipeline(&fakeRenderer{err: errors.New("bad font")}, store, wb, testLogger(&buf))

	_, err := p.Generate(context.Background(), sampleContract)
	require.ErrorIs(t, err, utils.ErrRender)
	assert.Empty(t, store.puts)
	assert.Zero(t, wb.calls)
}

func TestGenerate_UploadFailureSkipsWriteBack(t *testing.T) {
	var buf bytes.Buffer
	wb := &fakeWriteBack{}
	p := NewPipeline(&fakeRenderer{}, &fakeStore{err: errors.New("403")}, wb, testLogger(&buf))

	_, err := p.Generate(context.Background(), sampleContract)
	require.ErrorIs(t, err, utils.ErrStorage)
	assert.Equal(t, 500, utils.HTTPStatus(err))
	assert.Zero(t, wb.calls)
}

func TestGenerate_WriteBackFailureReportsOrphan(t *testing.T) {
	var buf bytes.Buffer
	store := &fakeStore{}
	at := time.UnixMilli(42)
	p := NewPipeline(&fakeRenderer{}, store, &fakeWriteBack{err: utils.ErrNotFound}, testLogger(&buf), fixedClock(at))

	_, err := p.Generate(context.Background(), sampleContract)
	require.ErrorIs(t, err, utils.ErrStore)
	assert.Equal(t, 500, utils.HTTPStatus(err))
	require.Len(t, store.puts, 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	data := line["data"].(map[string]any)
	assert.Equal(t, "contracts/C-0007-42.pdf", data["orphaned_object"])
}

func TestGenerate_LockIsBestEffort(t *testing.T) {
	var buf bytes.Buffer
	wb := &fakeWriteBack{}
	locker := &fakeLocker{err: errors.New("redislock: not obtained")}
	p := NewPipeline(&fakeRenderer{}, &fakeStore{}, wb, testLogger(&buf), WithLocker(locker))

	_, err := p.Generate(context.Background(), sampleContract)
	require.NoError(t, err)
	assert.Equal(t, []string{"lock:document:contracts:7"}, locker.keys)
	assert.Equal(t, 1, wb.calls)
}

func TestGenerate_ReleasesLock(t *testing.T) {
	var buf bytes.Buffer
	locker := &fakeLocker{}
	p := NewPipeline(&fakeRenderer{}, &fakeStore{}, &fakeWriteBack{}, testLogger(&buf), WithLocker(locker))

	_, err := p.Generate(context.Background(), models.Invoice{ID: 3, OwnerId: "bob"})
	require.NoError(t, err)
	assert.Equal(t, 1, locker.released)
}

func TestGenerate_LastWriteWins(t *testing.T) {
	var buf bytes.Buffer
	wb := &fakeWriteBack{}
	ts := time.UnixMilli(1000)
	p := NewPipeline(&fakeRenderer{}, &fakeStore{}, wb, testLogger(&buf), WithClock(func() time.Time {
		ts = ts.Add(time.Millisecond)
		return ts
	}))

	first, err := p.Generate(context.Background(), sampleContract)
	require.NoError(t, err)
	second, err := p.Generate(context.Background(), sampleContract)
	require.NoError(t, err)

	assert.NotEqual(t, first.DocumentUrl, second.DocumentUrl)
	assert.Equal(t, second.DocumentUrl, wb.urls[7])
}

func TestObjectKey(t *testing.T) {
	at := time.UnixMilli(5)
	tests := []struct {
		name string
		rec  models.OwnedRecord
		want string
	}{
		{"number", models.Invoice{ID: 1, InvoiceNumber: "INV-001"}, "invoices/INV-001-5.pdf"},
		{"id fallback", models.Invoice{ID: 12}, "invoices/12-5.pdf"},
		{"unsafe number", models.Contract{ID: 2, ContractNumber: "2024/07 #3"}, "contracts/2024-07-3-5.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.rec, at); got != tt.want {
				t.Fatalf("ObjectKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutPaginates(t *testing.T) {
	fields := make([]models.DocumentField, 0, 100)
	for i := 0; i < 100; i++ {
		fields = append(fields, models.DocumentField{Label: "Line", Value: "value"})
	}
	desc := layout(Document{Title: "Big", Fields: fields, GeneratedAt: time.Unix(0, 0)})
	assert.Greater(t, len(desc.Pages), 1)
	assert.Equal(t, "Big", desc.Pages["1"].Content.Text[0].Value)
}

func TestWrap(t *testing.T) {
	got := wrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range got {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "the quick brown fox jumps over the lazy dog", strings.Join(got, " "))
	assert.Equal(t, []string{""}, wrap("   ", 10))
}

func TestPDFRenderer_ProducesPDF(t *testing.T) {
	r := NewPDFRenderer()
	out, err := r.Render(context.Background(), DocumentFor(sampleContract, time.Unix(1700000000, 0)))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
