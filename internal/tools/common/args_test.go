package common

import "testing"

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"query": "miles davis",
		"limit": float64(5),
	}

	if got := StringArg(args, "query"); got != "miles davis" {
		t.Errorf("expected %q, got %q", "miles davis", got)
	}
	if got := StringArg(args, "missing"); got != "" {
		t.Errorf("expected empty string for missing key, got %q", got)
	}
	if got := StringArg(args, "limit"); got != "" {
		t.Errorf("expected empty string for non-string value, got %q", got)
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{
		"limit":  float64(25),
		"offset": 3,
		"query":  "jazz",
	}

	if got := IntArg(args, "limit", 10); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := IntArg(args, "offset", 0); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := IntArg(args, "missing", 10); got != 10 {
		t.Errorf("expected default 10, got %d", got)
	}
	if got := IntArg(args, "query", 10); got != 10 {
		t.Errorf("expected default for non-numeric value, got %d", got)
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{
		"detailed": true,
		"query":    "jazz",
	}

	if !BoolArg(args, "detailed", false) {
		t.Error("expected true")
	}
	if BoolArg(args, "missing", false) {
		t.Error("expected default false for missing key")
	}
	if !BoolArg(args, "query", true) {
		t.Error("expected default true for non-bool value")
	}
}
