package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{
			name:  "empty token",
			token: "",
			want:  "<empty>",
		},
		{
			name:  "short token",
			token: "abc",
			want:  "[token:3 chars]",
		},
		{
			name:  "bearer token",
			token: "BQDx8mXbBbp1yyz0123456789",
			want:  "[token:25 chars]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeToken(tt.token)
			if got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, got, tt.want)
			}
			if tt.token != "" && strings.Contains(got, tt.token) {
				t.Errorf("SanitizeToken(%q) leaked token content: %q", tt.token, got)
			}
		})
	}
}

func TestSanitizeClientID(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		want     string
	}{
		{
			name:     "empty",
			clientID: "",
			want:     "",
		},
		{
			name:     "short id returned unchanged",
			clientID: "abcd1234",
			want:     "abcd1234",
		},
		{
			name:     "long id truncated",
			clientID: "abcd1234efgh5678",
			want:     "abcd1234...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeClientID(tt.clientID); got != tt.want {
				t.Errorf("SanitizeClientID(%q) = %q, want %q", tt.clientID, got, tt.want)
			}
		})
	}
}

func TestErrNilSafe(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// Logging with a nil error must not add an error attribute
	logger.Info("operation completed", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("Err(nil) produced an error attribute: %s", buf.String())
	}
}

func TestWithOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	WithOperation(logger, "spotify.search").Info("done")
	if !strings.Contains(buf.String(), "operation=spotify.search") {
		t.Errorf("expected operation attribute, got: %s", buf.String())
	}
}

func TestAttrConstructors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("request finished",
		Endpoint("search"),
		Tool("search_music"),
		Status(StatusSuccess),
		Attempt(2),
	)

	out := buf.String()
	for _, want := range []string{
		"endpoint=search",
		"tool=search_music",
		"status=success",
		"attempt=2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in log output, got: %s", want, out)
		}
	}
}
