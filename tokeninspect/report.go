package tokeninspect

import "time"

// Status is the outcome of a single inspection.
type Status int

const (
	// StatusAbsent means no token was stored under the key. Not an error.
	StatusAbsent Status = iota
	// StatusPresent means the token decoded and carries an exp claim.
	StatusPresent
	// StatusMalformed means the token could not be decoded.
	StatusMalformed
	// StatusUnavailable means the store could not be read.
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	case StatusMalformed:
		return "malformed"
	case StatusUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// MarshalText renders the status by name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Report is the result of inspecting one token. ExpiresAt and Expired are
// only meaningful when Status is StatusPresent.
type Report struct {
	Status    Status
	Source    string // storage key, or "http"/"grpc" for request tokens
	Claims    Claims
	Algorithm string
	ExpiresAt time.Time
	Now       time.Time
	Expired   bool

	// Verified is set when signature verification is configured and passed.
	// VerifyErr explains a failed verification. Neither affects Status.
	Verified  bool
	VerifyErr error

	// Err is the decode or store failure for StatusMalformed and StatusUnavailable.
	Err error

	layout   string
	location *time.Location
}

func (r Report) Present() bool {
	return r.Status == StatusPresent
}

// ExpiresAtString renders the expiry as an absolute timestamp, or "" when
// the token was not decoded.
func (r Report) ExpiresAtString() string {
	if r.Status != StatusPresent {
		return ""
	}
	return r.format(r.ExpiresAt)
}

// NowString renders the time the token was compared against.
func (r Report) NowString() string {
	return r.format(r.Now)
}

func (r Report) format(t time.Time) string {
	layout := r.layout
	if layout == "" {
		layout = time.RFC3339
	}
	loc := r.location
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}
