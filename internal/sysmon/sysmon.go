// Package sysmon samples host-wide load so verbose runs can show how busy the
// machine was while the tasks were evaluated.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Load is a single snapshot of host resource usage.
type Load struct {
	CPUPercent  float64 // 0.0 .. 100.0
	MemPercent  float64 // 0.0 .. 100.0
	LogicalCPUs int
}

// Sample reads the current host load. CPU usage is the delta since the
// previous call. Fields the platform cannot report stay zero.
func Sample() Load {
	var l Load
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		l.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		l.MemPercent = clampPercent(vmem.UsedPercent)
	}
	if n, err := cpu.Counts(true); err == nil {
		l.LogicalCPUs = n
	}
	return l
}

// String renders the snapshot for the verbose summary line.
func (l Load) String() string {
	s := fmt.Sprintf("CPU %.1f%%, memory %.1f%%", l.CPUPercent, l.MemPercent)
	if l.LogicalCPUs > 0 {
		s += fmt.Sprintf(" on %d logical CPUs", l.LogicalCPUs)
	}
	return s
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
