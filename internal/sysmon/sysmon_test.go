package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.LogicalCPUs < 0 {
		t.Errorf("LogicalCPUs negative: %d", s.LogicalCPUs)
	}
}

func TestLoadString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		load Load
		want string
	}{
		{Load{CPUPercent: 12.5, MemPercent: 40, LogicalCPUs: 8}, "CPU 12.5%, memory 40.0% on 8 logical CPUs"},
		{Load{}, "CPU 0.0%, memory 0.0%"},
	}
	for _, tt := range tests {
		if got := tt.load.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClampPercent(t *testing.T) {
	t.Parallel()
	for in, want := range map[float64]float64{-3: 0, 0: 0, 55.5: 55.5, 100: 100, 130: 100} {
		if got := clampPercent(in); got != want {
			t.Errorf("clampPercent(%v) = %v, want %v", in, got, want)
		}
	}
}
