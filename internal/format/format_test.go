package format

import (
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "< 1µs"},
		{750 * time.Nanosecond, "0µs"},
		{42 * time.Microsecond, "42µs"},
		{15 * time.Millisecond, "15ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2*time.Minute + 300*time.Microsecond, "2m0s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	if got := FormatETA(0); got != "--" {
		t.Errorf("FormatETA(0) = %q", got)
	}
	if got := FormatETA(200 * time.Millisecond); got != "<1s" {
		t.Errorf("FormatETA(200ms) = %q", got)
	}
	if got := FormatETA(90*time.Second + 400*time.Millisecond); got != "1m30s" {
		t.Errorf("FormatETA(90.4s) = %q", got)
	}
}

func TestTruncateDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in           string
		limit, edges int
		want         string
	}{
		{"12345", 10, 2, "12345"},
		{"123456789012", 10, 3, "123...012"},
		{"-123456789012", 10, 3, "-123...012"},
		{"1234", 2, 2, "1234"},
		{"", 2, 1, ""},
	}
	for _, tt := range tests {
		if got := TruncateDigits(tt.in, tt.limit, tt.edges); got != tt.want {
			t.Errorf("TruncateDigits(%q, %d, %d) = %q, want %q", tt.in, tt.limit, tt.edges, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(4)
	clock := p.start
	p.now = func() time.Time { return clock }

	if f, eta := p.Snapshot(); f != 0 || eta != 0 {
		t.Errorf("initial = %v, %v", f, eta)
	}

	clock = clock.Add(2 * time.Second)
	f, eta := p.Advance()
	if f != 0.25 || eta != 6*time.Second {
		t.Errorf("after one task = %v, %v; want 0.25, 6s", f, eta)
	}

	for range 5 {
		f, eta = p.Advance()
	}
	if f != 1 || eta != 0 {
		t.Errorf("after completion = %v, %v; want 1, 0", f, eta)
	}

	if f, _ := NewProgressWithETA(0).Advance(); f != 1 {
		t.Errorf("empty progress fraction = %v, want 1", f)
	}
}
