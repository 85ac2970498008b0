package instrumentation

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool("search_music").
		WithArea(AreaSearch).
		WithEndpoint("search").
		WithResource("track", "11dFghVXANMlKmJXsNCQ").
		WithUserAuth(false).
		Build()

	want := map[string]bool{
		SpanAttrTool:         false,
		SpanAttrArea:         false,
		SpanAttrEndpoint:     false,
		SpanAttrResourceType: false,
		SpanAttrResourceID:   false,
		SpanAttrUserAuth:     false,
	}
	for _, attr := range attrs {
		if _, ok := want[string(attr.Key)]; ok {
			want[string(attr.Key)] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("expected attribute %q to be set", key)
		}
	}
}

func TestSpanAttributeBuilder_SkipsEmptyValues(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithEndpoint("").
		WithResource("", "").
		Build()

	if len(attrs) != 0 {
		t.Errorf("expected no attributes for empty values, got %d", len(attrs))
	}
}

func TestStartToolSpan(t *testing.T) {
	ctx, span := StartToolSpan(context.Background(), "search_music")
	defer span.End()

	if ctx == nil {
		t.Fatal("expected context to be non-nil")
	}
	// Without a configured tracer provider, spans are no-ops but must be safe.
	SetSpanSuccess(span)
	AddSpanEvent(span, "results", attribute.Int("count", 3))
}

func TestStartSpotifyAPISpan(t *testing.T) {
	_, span := StartSpotifyAPISpan(context.Background(), "tracks/11dFghVXANMlKmJXsNCQ")
	defer span.End()

	SetSpanError(span, errors.New("boom"))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	if id := GetTraceID(context.Background()); id != "" {
		t.Errorf("expected empty trace ID, got %q", id)
	}
	if id := GetSpanID(context.Background()); id != "" {
		t.Errorf("expected empty span ID, got %q", id)
	}
	if s := SpanContextString(context.Background()); s != "" {
		t.Errorf("expected empty span context string, got %q", s)
	}
}
