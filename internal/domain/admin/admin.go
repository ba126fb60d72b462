// Package admin gates the raw selection table behind a shared passcode.
//
// The passcode is a plaintext constant compared on every request. There is no
// hashing, lockout or rate limiting; this is a convenience gate, not an
// authentication mechanism, and should not be reused as one.
//
// The page echoes the submitted passcode back into its masked field so the
// admin table survives further selections. The value is therefore present
// in the HTML source of every response that carries it.
package admin

import "crypto/subtle"

// Passcode unlocks the admin view.
const Passcode = "650560"

// Decision is the outcome of one passcode check.
type Decision struct {
	Granted bool
}

// Message returns the text shown for the decision.
func (d Decision) Message() string {
	if d.Granted {
		return "Access Granted: Viewing Admin Data"
	}
	return "Access Denied. Enter Passcode."
}

// Check compares the submitted value with Passcode as an exact string. No
// trimming or normalisation is applied.
func Check(submitted string) Decision {
	return Decision{Granted: subtle.ConstantTimeCompare([]byte(submitted), []byte(Passcode)) == 1}
}
