// Package storage keeps uploaded media (profile pictures, story attachments)
// and serves it back read-only under /uploads.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("object not found")
	ErrInvalidKey = errors.New("invalid object key")
)

// PublicPrefix is the URL path uploaded objects are served under.
const PublicPrefix = "/uploads/"

const defaultContentType = "application/octet-stream"

// saveAttempts bounds how many later timestamps Save tries when a key is taken.
const saveAttempts = 8

type ObjectInfo struct {
	ContentType string
	Size        int64
}

// Store saves uploaded bytes and returns the key to read them back with.
type Store interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
}

// PublicPath returns the URL path of key.
func PublicPath(key string) string {
	return PublicPrefix + key
}

// KeyFromPublicPath is the inverse of PublicPath.
func KeyFromPublicPath(p string) (string, bool) {
	key, ok := strings.CutPrefix(p, PublicPrefix)
	if !ok || !ValidKey(key) {
		return "", false
	}
	return key, true
}

// NewKey names an upload "<unix millis>-<sanitised original name>".
func NewKey(now time.Time, original string) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeName(original))
}

// SanitizeName reduces a client supplied file name to [A-Za-z0-9._-].
func SanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case keyRune(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	clean := strings.TrimLeft(b.String(), ".")
	if clean == "" {
		return "file"
	}
	if len(clean) > 100 {
		ext := path.Ext(clean)
		if len(ext) > 10 {
			ext = ""
		}
		clean = clean[:100-len(ext)] + ext
	}
	return clean
}

// ValidKey reports whether key is a single, non-hidden path element made of
// the characters NewKey emits.
func ValidKey(key string) bool {
	if key == "" || len(key) > 200 {
		return false
	}
	if strings.HasPrefix(key, ".") {
		return false
	}
	for _, r := range key {
		if !keyRune(r) {
			return false
		}
	}
	return true
}

func keyRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '.' || r == '-' || r == '_'
}

func contentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return defaultContentType
}
