package tokeninspect

import (
	"crypto/rsa"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultStorageKey is the key a token is read from when WithStorageKey is not given.
const DefaultStorageKey = "token"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function into a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// algorithmValidator holds the verification key and method for one algorithm
type algorithmValidator struct {
	verifyKey     interface{}       // []byte for HS256, *rsa.PublicKey for RS256
	signingMethod jwt.SigningMethod // jwt.SigningMethodHS256 or jwt.SigningMethodRS256
}

// Option configures an Inspector
type Option func(*Inspector) error

// WithStorageKey sets the key the token is read from
func WithStorageKey(key string) Option {
	return func(i *Inspector) error {
		if key == "" {
			return fmt.Errorf("storage key cannot be empty")
		}
		i.key = key
		return nil
	}
}

// WithLogger sets a structured logger for inspection diagnostics.
// Without one the inspector is silent and callers rely on the Report.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) error {
		i.logger = logger
		return nil
	}
}

// WithClock replaces the wall clock used for the expiry comparison
func WithClock(clock Clock) Option {
	return func(i *Inspector) error {
		if clock == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		i.clock = clock
		return nil
	}
}

// WithTimeLayout sets the layout used to render expiry and current time
func WithTimeLayout(layout string) Option {
	return func(i *Inspector) error {
		if layout == "" {
			return fmt.Errorf("time layout cannot be empty")
		}
		i.layout = layout
		return nil
	}
}

// WithLocation sets the time zone rendered timestamps are expressed in
func WithLocation(loc *time.Location) Option {
	return func(i *Inspector) error {
		if loc == nil {
			return fmt.Errorf("location cannot be nil")
		}
		i.location = loc
		return nil
	}
}

// WithCookie makes the HTTP middleware fall back to the named cookie when
// no Authorization header is sent
func WithCookie(cookieName string) Option {
	return func(i *Inspector) error {
		i.cookieName = cookieName
		return nil
	}
}

// WithHS256 enables HMAC-SHA256 signature verification with the given secret
func WithHS256(secret []byte) Option {
	return func(i *Inspector) error {
		if len(secret) < 32 {
			return fmt.Errorf("HS256 secret must be at least 32 bytes (256 bits), got %d bytes", len(secret))
		}
		i.validators["HS256"] = algorithmValidator{
			verifyKey:     secret,
			signingMethod: jwt.SigningMethodHS256,
		}
		return nil
	}
}

// WithRS256 enables RSA-SHA256 signature verification with the given public key
func WithRS256(publicKey *rsa.PublicKey) Option {
	return func(i *Inspector) error {
		if publicKey == nil {
			return fmt.Errorf("RS256 public key cannot be nil")
		}
		i.validators["RS256"] = algorithmValidator{
			verifyKey:     publicKey,
			signingMethod: jwt.SigningMethodRS256,
		}
		return nil
	}
}

// Key returns the storage key tokens are read from
func (i *Inspector) Key() string {
	return i.key
}

// VerificationAlgorithms returns a sorted list of algorithms signatures are checked with.
// Empty means the inspector only decodes.
func (i *Inspector) VerificationAlgorithms() []string {
	algs := make([]string, 0, len(i.validators))
	for alg := range i.validators {
		algs = append(algs, alg)
	}
	sort.Strings(algs)
	return algs
}

func (i *Inspector) getValidator(alg string) (algorithmValidator, bool) {
	v, ok := i.validators[alg]
	return v, ok
}
