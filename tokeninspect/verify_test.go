package tokeninspect

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignatureVerification(t *testing.T) {
	hs256Secret := make([]byte, 32)
	if _, err := rand.Read(hs256Secret); err != nil {
		t.Fatalf("Failed to generate HS256 secret: %v", err)
	}
	otherSecret := make([]byte, 32)
	if _, err := rand.Read(otherSecret); err != nil {
		t.Fatalf("Failed to generate HS256 secret: %v", err)
	}

	rs256PrivateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	tests := []struct {
		name          string
		options       []Option
		signingMethod jwt.SigningMethod
		signingKey    interface{}
		wantVerified  bool
		wantCode      ErrorCode
	}{
		{
			name:          "HS256 token with matching secret",
			options:       []Option{WithHS256(hs256Secret)},
			signingMethod: jwt.SigningMethodHS256,
			signingKey:    hs256Secret,
			wantVerified:  true,
		},
		{
			name:          "RS256 token with matching public key",
			options:       []Option{WithHS256(hs256Secret), WithRS256(&rs256PrivateKey.PublicKey)},
			signingMethod: jwt.SigningMethodRS256,
			signingKey:    rs256PrivateKey,
			wantVerified:  true,
		},
		{
			name:          "HS256 token signed with another secret",
			options:       []Option{WithHS256(hs256Secret)},
			signingMethod: jwt.SigningMethodHS256,
			signingKey:    otherSecret,
			wantCode:      ErrInvalidSignature,
		},
		{
			name:          "RS256 token with HS256-only inspector",
			options:       []Option{WithHS256(hs256Secret)},
			signingMethod: jwt.SigningMethodRS256,
			signingKey:    rs256PrivateKey,
			wantCode:      ErrUnsupportedAlgorithm,
		},
		{
			name:          "none algorithm",
			options:       []Option{WithHS256(hs256Secret)},
			signingMethod: jwt.SigningMethodNone,
			signingKey:    jwt.UnsafeAllowNoneSignatureType,
			wantCode:      ErrNoneAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := jwt.MapClaims{
				"sub": "user123",
				"exp": fixedNow.Add(time.Hour).Unix(),
			}
			tokenString, err := jwt.NewWithClaims(tt.signingMethod, claims).SignedString(tt.signingKey)
			if err != nil {
				t.Fatalf("Failed to sign token: %v", err)
			}

			insp := newTestInspector(t, NewMemoryStore(map[string]string{"token": tokenString}), tt.options...)
			report := insp.Inspect(context.Background())

			if report.Status != StatusPresent {
				t.Fatalf("verification must not change status, got %s (err: %v)", report.Status, report.Err)
			}
			if report.Verified != tt.wantVerified {
				t.Errorf("expected verified=%v, got %v (err: %v)", tt.wantVerified, report.Verified, report.VerifyErr)
			}
			if tt.wantCode != "" {
				if got := CodeOf(report.VerifyErr); got != tt.wantCode {
					t.Errorf("expected verify error %s, got %s (%v)", tt.wantCode, got, report.VerifyErr)
				}
			} else if report.VerifyErr != nil {
				t.Errorf("unexpected verify error: %v", report.VerifyErr)
			}
		})
	}
}

func TestVerificationIgnoresExpiry(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	claims := jwt.MapClaims{"sub": "user123", "exp": fixedNow.Add(-time.Hour).Unix()}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	insp := newTestInspector(t, NewMemoryStore(map[string]string{"token": tokenString}), WithHS256(secret))
	report := insp.Inspect(context.Background())

	if !report.Expired {
		t.Error("expected token to be reported expired")
	}
	if !report.Verified {
		t.Errorf("an expired token with a valid signature should verify, got %v", report.VerifyErr)
	}
}

func TestVerificationDisabledByDefault(t *testing.T) {
	token := buildToken(t, hs256Header, map[string]any{"exp": fixedNow.Unix() + 60})
	report := newTestInspector(t, NewMemoryStore(map[string]string{"token": token})).Inspect(context.Background())

	if report.Verified || report.VerifyErr != nil {
		t.Errorf("expected no verification without keys, got verified=%v err=%v", report.Verified, report.VerifyErr)
	}
}

func TestTwoSegmentTokenFailsVerificationOnly(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	token := encodeSegment(t, hs256Header) + "." + encodeSegment(t, map[string]any{"exp": fixedNow.Unix() + 60})

	insp := newTestInspector(t, NewMemoryStore(map[string]string{"token": token}), WithHS256(secret))
	report := insp.Inspect(context.Background())

	if report.Status != StatusPresent {
		t.Fatalf("expected status present, got %s", report.Status)
	}
	if CodeOf(report.VerifyErr) != ErrMalformed {
		t.Errorf("expected verify error %s, got %v", ErrMalformed, report.VerifyErr)
	}
}
