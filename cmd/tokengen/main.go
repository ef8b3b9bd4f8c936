package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Wang-tianhao/token-inspector-go/tokeninspect"
	"github.com/golang-jwt/jwt/v5"
)

// tokengen plays the part of the login flow: it issues a token and writes it
// into a file store where tokeninspect can read it.
func main() {
	var (
		secret  = flag.String("secret", "your-256-bit-secret-key-min-32-bytes-here-for-demo!", "Secret key (minimum 32 bytes)")
		subject = flag.String("sub", "user123", "Subject (user ID)")
		email   = flag.String("email", "user@example.com", "Email address")
		role    = flag.String("role", "user", "User role")
		ttl     = flag.Duration("ttl", time.Hour, "Token validity; negative values issue an already expired token")
		file    = flag.String("file", "storage.json", "JSON storage file to write the token into (empty to skip)")
		key     = flag.String("key", tokeninspect.DefaultStorageKey, "Storage key")
	)

	flag.Parse()

	if len(*secret) < 32 {
		log.Fatal("Secret must be at least 32 bytes")
	}

	now := time.Now()
	expiresAt := now.Add(*ttl)
	claims := jwt.MapClaims{
		"sub":   *subject,
		"email": *email,
		"role":  *role,
		"exp":   expiresAt.Unix(),
		"iat":   now.Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(*secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	if *file != "" {
		if err := tokeninspect.NewFileStore(*file).Set(*key, tokenString); err != nil {
			log.Fatalf("Failed to store token: %v", err)
		}
	}

	fmt.Println("\n=== Token Issued ===")
	fmt.Printf("\nToken: %s\n\n", tokenString)
	fmt.Printf("  Subject: %s\n", *subject)
	fmt.Printf("  Expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	if *file != "" {
		fmt.Printf("  Stored:  %s (key %q)\n\n", *file, *key)
		fmt.Println("Inspect with:")
		fmt.Printf("  tokeninspect -file %s -key %s -secret '%s'\n\n", *file, *key, *secret)
	}
}
