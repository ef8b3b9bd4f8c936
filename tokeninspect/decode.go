package tokeninspect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// segmentDecoder accepts both unpadded base64url (the compact encoding) and
// padded input produced by some token issuers.
var segmentDecoder = jwt.NewParser(jwt.WithPaddingAllowed())

// decodeClaims splits a compact token and decodes its payload segment.
// Only two segments are required; the signature is not looked at.
func decodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, NewInspectionError(
			ErrMalformed,
			fmt.Sprintf("token has %d segment(s), expected at least 2", len(parts)),
			nil,
		)
	}

	payload, err := segmentDecoder.DecodeSegment(parts[1])
	if err != nil {
		return nil, NewInspectionError(ErrMalformed, "payload is not valid base64url", err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, NewInspectionError(ErrMalformed, "payload is not a JSON object", err)
	}
	if claims == nil {
		return nil, NewInspectionError(ErrMalformed, "payload is not a JSON object", nil)
	}

	return claims, nil
}

// decodeAlgorithm extracts alg from the header segment.
// Returns empty string if the header cannot be read.
func decodeAlgorithm(token string) string {
	header, _, ok := strings.Cut(token, ".")
	if !ok {
		return ""
	}

	headerBytes, err := segmentDecoder.DecodeSegment(header)
	if err != nil {
		return ""
	}

	var fields map[string]any
	if err := json.Unmarshal(headerBytes, &fields); err != nil {
		return ""
	}

	alg, _ := fields["alg"].(string)
	return alg
}
