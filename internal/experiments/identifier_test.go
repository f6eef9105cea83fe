// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experiments

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"lr 0.01", "lr_0_01"},
		{"a//b..c", "a_b_c"},
		{"__trimmed__", "trimmed"},
		{"mixed-OK_2", "mixed-OK_2"},
	}

	for _, tt := range tests {
		if got := sanitizeIdentifier(tt.in); got != tt.want {
			t.Errorf("sanitizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"model.ckpt", "model_ckpt"},
		{`a/b\c:d`, "a_b_c_d"},
		{"a  b", "a_b"},
		{"q?s*t", "q_s_t"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandDateFields(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"run_$DATE", "run_20260314"},
		{"run_$DATE0", "run_2026-03-14"},
		{"run_$DATE1", "run_20260314"},
		{"run_$DATETIME", "run_20260314092653"},
		{"run_$DATETIME0", "run_2026-03-14_09:26:53"},
		{"run_$DATETIME1", "run_20260314-09:26:53"},
		{"$FILE_suffix", "exp_1_suffix"},
		{"no fields", "no fields"},
	}

	for _, tt := range tests {
		if got := expandDateFields(tt.prefix, "exp_1", testNow); got != tt.want {
			t.Errorf("expandDateFields(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]any
		prefix   string
		want     string
	}{
		{
			name:   "sorted params",
			params: map[string]any{"lr": 0.01, "batch": 32},
			prefix: "",
			want:   "batch_32_lr_0_01",
		},
		{
			name:   "prefix leads",
			params: map[string]any{"seed": 7},
			prefix: "trial",
			want:   "trial_seed_7",
		},
		{
			name:   "name key skipped",
			params: map[string]any{"name": "baseline", "lr": 0.1},
			prefix: "",
			want:   "lr_0_1",
		},
		{
			name:   "empty falls back to default",
			params: nil,
			prefix: "",
			want:   "default",
		},
		{
			name:   "date field in prefix",
			params: map[string]any{"k": 1},
			prefix: "$DATE1",
			want:   "20260314_k_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := identifier(tt.params, tt.prefix, "file", testNow); got != tt.want {
				t.Errorf("identifier = %q, want %q", got, tt.want)
			}
		})
	}
}
