package consent

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/mmdatafocus/portal_backend/utils"
)

// Fingerprint picks the visitor key: the primary session cookie, then the
// secure variant, then a fresh anonymous token. Session tokens are hashed so
// consent rows never hold a live credential.
func Fingerprint(primaryCookie, secureCookie string, now time.Time) string {
	for _, tok := range []string{primaryCookie, secureCookie} {
		if tok = strings.TrimSpace(tok); tok != "" {
			sum := sha256.Sum256([]byte(tok))
			return "sess_" + hex.EncodeToString(sum[:])[:32]
		}
	}
	return utils.AnonymousToken(now)
}
