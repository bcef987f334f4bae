package domain

import "time"

// ResetTokenTTL is how long a password reset link stays usable.
const ResetTokenTTL = time.Hour

// ResetToken is a row of tokens. Fingerprint is the base64url SHA-256 of the
// token mailed to the user; the raw token is never stored.
type ResetToken struct {
	ID          int64
	UserID      int64
	Fingerprint string
	Expiration  time.Time
}

// Expired reports whether the token is unusable at now. The boundary is
// exclusive: a token is already expired at exactly its expiration instant.
func (t ResetToken) Expired(now time.Time) bool {
	return !now.Before(t.Expiration)
}
