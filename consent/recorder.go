package consent

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mmdatafocus/portal_backend/access"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/sirupsen/logrus"
)

type Store interface {
	Insert(ctx context.Context, rec *models.ConsentRecord) error
}

// Visitor is the request metadata the recorder keeps alongside a submission.
type Visitor struct {
	Identity      *access.Identity
	PrimaryCookie string
	SecureCookie  string
	IpAddress     string
	UserAgent     string
}

type Recorder struct {
	store  Store
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

func NewRecorder(store Store, logger *logrus.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Record inserts exactly one consent row for the submission.
func (r *Recorder) Record(ctx context.Context, v Visitor, sub Submission) (*models.ConsentRecord, error) {
	now := r.now()
	rec := &models.ConsentRecord{
		ConsentId:          r.newID(),
		SessionFingerprint: Fingerprint(v.PrimaryCookie, v.SecureCookie, now),
		IpAddress:          truncate(v.IpAddress, 64),
		UserAgent:          truncate(v.UserAgent, 512),
		Necessary:          true,
		Functional:         sub.Functional,
		Analytics:          sub.Analytics,
		Marketing:          sub.Marketing,
		CreatedAt:          now,
	}
	if v.Identity != nil && v.Identity.ID != "" {
		id := v.Identity.ID
		rec.UserId = &id
	}
	if len(sub.Preferences) > 0 {
		prefs := string(sub.Preferences)
		rec.Preferences = &prefs
	}

	if err := r.store.Insert(ctx, rec); err != nil {
		config.LogError(r.logger, "consent", "Record", "insert consent", map[string]interface{}{
			"consent_id":  rec.ConsentId,
			"fingerprint": rec.SessionFingerprint,
		}, err)
		return nil, err
	}
	return rec, nil
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
