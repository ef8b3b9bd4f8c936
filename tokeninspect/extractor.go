package tokeninspect

import (
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

// parseBearer extracts the token from an "Authorization: Bearer <token>" value
func parseBearer(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", NewInspectionError(ErrMalformed, "invalid authorization format, expected 'Bearer <token>'", nil)
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", NewInspectionError(ErrMissingToken, "token is empty", nil)
	}

	return token, nil
}

// extractToken extracts a token from an HTTP request.
// Checks Authorization header first, then falls back to cookie if configured.
func extractToken(r *http.Request, cookieName string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		return parseBearer(authHeader)
	}

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil {
			if token := strings.TrimSpace(cookie.Value); token != "" {
				return token, nil
			}
		}
	}

	return "", NewInspectionError(ErrMissingToken, "authorization header not found", nil)
}

// extractTokenFromMetadata extracts a token from gRPC metadata
func extractTokenFromMetadata(md metadata.MD) (string, error) {
	values := md.Get("authorization")
	if len(values) == 0 {
		return "", NewInspectionError(ErrMissingToken, "authorization metadata not found", nil)
	}
	return parseBearer(values[0])
}
