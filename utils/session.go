package utils

// Session cookie names. The secure variant is used when the cookie is issued
// with the Secure attribute; readers accept both.
const (
	SessionCookieName       = "portal_session"
	SecureSessionCookieName = "__Secure-portal_session"
)
