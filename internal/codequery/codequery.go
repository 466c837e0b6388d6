// Package codequery encodes inline template content into a loader query
// payload and decodes it again on the code-loader side.
package codequery

import (
	"encoding/base64"
	"fmt"
	"strings"
)

var encoding = base64.RawURLEncoding

// Encode returns an opaque payload for code. The payload never contains
// '!', '?' or '/', so it is safe inside a loader request.
func Encode(code string) string {
	return encoding.EncodeToString([]byte(code))
}

// Decode reverses Encode. A leading '?' (as received in a loader query) is ignored.
func Decode(query string) (string, error) {
	raw, err := encoding.DecodeString(strings.TrimPrefix(query, "?"))
	if err != nil {
		return "", fmt.Errorf("decoding inline code payload: %w", err)
	}
	return string(raw), nil
}
