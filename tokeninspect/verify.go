package tokeninspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// verifySignature checks the token signature against the configured keys.
// Time-based claims are deliberately not validated here: expiry is reported
// through Report.Expired.
func (i *Inspector) verifySignature(tokenString string) error {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return i.keyForToken(token)
	})
	if err != nil {
		// The JWT library wraps errors returned from the key func
		var inspErr *InspectionError
		if errors.As(err, &inspErr) {
			return inspErr
		}

		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return NewInspectionError(ErrInvalidSignature, "invalid signature", err)
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			return NewInspectionError(ErrUnsupportedAlgorithm, "token cannot be verified with the configured keys", err)
		}
		return NewInspectionError(ErrMalformed, "token cannot be parsed for verification", err)
	}

	if !token.Valid {
		return NewInspectionError(ErrInvalidSignature, "token is invalid", nil)
	}
	return nil
}

// keyForToken routes the token to the key configured for its alg header and
// rejects none and algorithm confusion.
func (i *Inspector) keyForToken(token *jwt.Token) (interface{}, error) {
	alg, ok := token.Header["alg"].(string)
	if !ok {
		return nil, NewInspectionError(ErrMalformed, "missing algorithm in token header", nil)
	}

	if strings.EqualFold(alg, "none") {
		return nil, NewInspectionError(ErrNoneAlgorithm, "none algorithm not allowed", nil)
	}

	validator, exists := i.getValidator(alg)
	if !exists {
		return nil, NewInspectionError(
			ErrUnsupportedAlgorithm,
			fmt.Sprintf("algorithm %s not supported (available: %s)", alg, strings.Join(i.VerificationAlgorithms(), ", ")),
			nil,
		)
	}

	if token.Method.Alg() != validator.signingMethod.Alg() {
		return nil, NewInspectionError(
			ErrInvalidSignature,
			fmt.Sprintf("algorithm confusion detected: token method %s does not match expected method %s",
				token.Method.Alg(), validator.signingMethod.Alg()),
			nil,
		)
	}

	return validator.verifyKey, nil
}
