package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestToolInvocation_Lifecycle(t *testing.T) {
	ti := NewToolInvocation("search_music")

	if ti.ID == "" {
		t.Error("expected invocation ID to be set")
	}
	if ti.Tool != "search_music" {
		t.Errorf("expected tool 'search_music', got %q", ti.Tool)
	}
	if ti.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}

	ti.WithQuery("karma police").WithEndpoint("search")
	if ti.Area != AreaSearch {
		t.Errorf("expected area %q, got %q", AreaSearch, ti.Area)
	}

	time.Sleep(time.Millisecond)
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("expected success")
	}
	if ti.Duration <= 0 {
		t.Error("expected positive duration")
	}
	if ti.Status() != StatusSuccess {
		t.Errorf("expected status %q, got %q", StatusSuccess, ti.Status())
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation("get_track_details")
	ti.CompleteWithError(errors.New("not found"))

	if ti.Success {
		t.Error("expected failure")
	}
	if ti.Error != "not found" {
		t.Errorf("expected error 'not found', got %q", ti.Error)
	}
	if ti.Status() != StatusError {
		t.Errorf("expected status %q, got %q", StatusError, ti.Status())
	}
}

func TestToolInvocation_LogAttrs_OmitsRawQuery(t *testing.T) {
	ti := NewToolInvocation("search_music").WithQuery("secret search")
	ti.CompleteSuccess()

	for _, attr := range ti.LogAttrs() {
		if attr.Key == "query" {
			t.Error("standard attrs must not contain the raw query")
		}
		if attr.Key == "query_length" && attr.Value.Int64() != int64(len("secret search")) {
			t.Errorf("unexpected query_length %d", attr.Value.Int64())
		}
	}
}

func TestToolInvocation_LogAuditAttrs_IncludesRawQuery(t *testing.T) {
	ti := NewToolInvocation("search_music").WithQuery("secret search").WithEndpoint("search")
	ti.CompleteSuccess()

	found := false
	for _, attr := range ti.LogAuditAttrs() {
		if attr.Key == "query" && attr.Value.String() == "secret search" {
			found = true
		}
	}
	if !found {
		t.Error("audit attrs must contain the raw query")
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)
	ti := NewToolInvocation("search_music").WithQuery("karma police")
	ti.CompleteSuccess()

	al.LogToolInvocation(ti)

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("expected tool_executed log, got %q", out)
	}
	if strings.Contains(out, "karma police") {
		t.Error("query must not appear without IncludeQueries")
	}
	if !strings.Contains(out, "query_length") {
		t.Error("expected query_length attribute")
	}
}

func TestAuditLogger_IncludeQueries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{
		Enabled:        true,
		IncludeQueries: true,
	})
	ti := NewToolInvocation("search_music").WithQuery("karma police")
	ti.CompleteSuccess()

	al.LogToolInvocation(ti)

	if !strings.Contains(buf.String(), "karma police") {
		t.Error("expected raw query with IncludeQueries enabled")
	}
}

func TestAuditLogger_FailureLogsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)
	ti := NewToolInvocation("get_album_details")
	ti.CompleteWithError(errors.New("upstream unavailable"))

	al.LogToolInvocation(ti)

	out := buf.String()
	if !strings.Contains(out, "tool_failed") {
		t.Errorf("expected tool_failed log, got %q", out)
	}
	if !strings.Contains(out, "upstream unavailable") {
		t.Error("expected error message in log")
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})
	ti := NewToolInvocation("search_music")
	ti.CompleteSuccess()

	al.LogToolInvocation(ti)
	al.LogToolAudit(ti)

	if buf.Len() != 0 {
		t.Errorf("expected no output when disabled, got %q", buf.String())
	}
}
