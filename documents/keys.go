package documents

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/mmdatafocus/portal_backend/models"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey is "{category}/{number-or-id}-{unix millis}.pdf". The document
// number is preferred; characters outside [A-Za-z0-9._-] become "-".
func ObjectKey(rec models.OwnedRecord, at time.Time) string {
	name := unsafeKeyChars.ReplaceAllString(rec.GetNumber(), "-")
	if name == "" || name == "-" {
		name = strconv.Itoa(rec.GetID())
	}
	return fmt.Sprintf("%s/%s-%d.pdf", rec.DocumentCategory(), name, at.UnixMilli())
}

func lockKey(rec models.OwnedRecord) string {
	return fmt.Sprintf("lock:document:%s:%d", rec.DocumentCategory(), rec.GetID())
}
