package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNewWithoutCredentials(t *testing.T) {
	tests := []struct {
		name                    string
		endpoint, access, secret string
	}{
		{"no endpoint", "", "a", "s"},
		{"no access key", "https://s3.example.com", "", "s"},
		{"no secret key", "https://s3.example.com", "a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "fsn1", tt.access, tt.secret, "private")
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c != nil {
				t.Fatal("expected nil client when storage is not configured")
			}
		})
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://s3.example.com", "fsn1", "a", "s", ""); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}

// TestPresignedURL signs offline; presigning never contacts the endpoint.
func TestPresignedURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "fsn1", "AKIATEST", "secret", "downloads-bucket")
	if err != nil || c == nil {
		t.Fatalf("New: %v", err)
	}
	if c.PrivateBucket() != "downloads-bucket" {
		t.Errorf("PrivateBucket = %q", c.PrivateBucket())
	}

	raw, err := c.PresignedURL(context.Background(), "downloads/abc", 15*time.Minute)
	if err != nil {
		t.Fatalf("PresignedURL: %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse presigned URL: %v", err)
	}
	if u.Host != "s3.example.com" {
		t.Errorf("host = %q", u.Host)
	}
	if !strings.HasPrefix(u.Path, "/downloads-bucket/downloads/abc") {
		t.Errorf("path = %q, want path-style bucket/key", u.Path)
	}
	if got := u.Query().Get("X-Amz-Expires"); got != "900" {
		t.Errorf("X-Amz-Expires = %q, want 900", got)
	}
	if u.Query().Get("X-Amz-Signature") == "" {
		t.Error("missing signature")
	}
}

func TestPresignedURLClampsExpiry(t *testing.T) {
	c, _ := New("https://s3.example.com", "fsn1", "AKIATEST", "secret", "b")

	raw, err := c.PresignedURL(context.Background(), "k", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("PresignedURL: %v", err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("X-Amz-Expires"); got != "604800" {
		t.Errorf("X-Amz-Expires = %q, want 604800", got)
	}
}
