// Package blob stores uploaded binary objects (member avatars, log
// photos) and hands back publicly resolvable URLs.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// Store persists an object under a key and returns its public URL
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Object is a decoded inline upload
type Object struct {
	ContentType string
	Data        []byte
}

// IsDataURL reports whether s is an inline data: URL
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseDataURL decodes a base64 data: URL into its content type and payload
func ParseDataURL(s string) (*Object, error) {
	if !IsDataURL(s) {
		return nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL: missing payload")
	}

	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, fmt.Errorf("unsupported data URL encoding: %q", encoding)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return &Object{ContentType: contentType, Data: data}, nil
}

// Extension returns the filename extension for a content type
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
