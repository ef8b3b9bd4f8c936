package tokeninspect

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRSAPublicKey(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}

	pkixBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal PKIX key: %v", err)
	}
	pkixPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkixBytes})
	pkcs1PEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&privateKey.PublicKey)})

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate EC key: %v", err)
	}
	ecBytes, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal EC key: %v", err)
	}
	ecPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: ecBytes})

	tests := []struct {
		name    string
		pem     []byte
		wantErr bool
	}{
		{name: "PKIX", pem: pkixPEM},
		{name: "PKCS1", pem: pkcs1PEM},
		{name: "not PEM", pem: []byte("hello"), wantErr: true},
		{name: "EC key", pem: ecPEM, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "public.pem")
			if err := os.WriteFile(path, tt.pem, 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}

			key, err := LoadRSAPublicKey(path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key.N.Cmp(privateKey.PublicKey.N) != 0 {
				t.Error("parsed key does not match")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRSAPublicKey(filepath.Join(t.TempDir(), "missing.pem")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
