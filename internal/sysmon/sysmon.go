// Package sysmon samples system-wide CPU, memory and load figures for the
// dashboard header.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	Load1      float64 // one-minute load average, 0 where unsupported
}

// Sampler produces Stats snapshots.
type Sampler interface {
	Sample() Stats
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() Stats

// Sample implements Sampler.
func (f SamplerFunc) Sample() Stats { return f() }

// System samples the host through gopsutil.
var System Sampler = SamplerFunc(Sample)

// Sample collects a single snapshot. CPU uses interval=0, i.e. the usage
// since the previous call. Fields that cannot be read are left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = clampPercent(vmem.UsedPercent)
	}
	if avg, err := load.Avg(); err == nil && avg != nil {
		s.Load1 = avg.Load1
	}
	return s
}

// LogicalCPUs returns the number of logical processors reported by the
// host, or 0 when unknown.
func LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0
	}
	return n
}

func clampPercent(v float64) float64 {
	return min(max(v, 0), 100)
}
