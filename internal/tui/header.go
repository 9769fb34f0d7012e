package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/threadcalc/internal/clock"
	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/sysmon"
)

// sparklineSamples is the number of system samples kept for the header.
const sparklineSamples = 20

// HeaderModel renders the top bar: title, elapsed time and host load.
type HeaderModel struct {
	clk       clock.Clock
	startTime time.Time
	endTime   time.Time
	version   string
	width     int
	cpu       *RingBuffer
	mem       *RingBuffer
	load1     float64
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(clk clock.Clock, version string) HeaderModel {
	return HeaderModel{
		clk:       clk,
		startTime: clk.Now(),
		version:   version,
		cpu:       NewRingBuffer(sparklineSamples),
		mem:       NewRingBuffer(sparklineSamples),
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = h.clk.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// UpdateSysStats records a host sample.
func (h *HeaderModel) UpdateSysStats(s sysmon.Stats) {
	h.cpu.Push(s.CPUPercent)
	h.mem.Push(s.MemPercent)
	h.load1 = s.Load1
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return h.clk.Now().Sub(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "threadcalc pi-parallel"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	left := titleStyle.Render(titleText) + pipe +
		accentStyle.Render("Elapsed: "+format.FormatExecutionDuration(h.Elapsed()))

	right := fmt.Sprintf("%s %s%s%s %s%s%s",
		dimStyle.Render(fmt.Sprintf("CPU %5.1f%%", h.cpu.Last())), cpuSparklineStyle.Render(RenderSparkline(h.cpu.Slice())),
		pipe,
		dimStyle.Render(fmt.Sprintf("Mem %5.1f%%", h.mem.Last())), memSparklineStyle.Render(RenderSparkline(h.mem.Slice())),
		pipe,
		dimStyle.Render(fmt.Sprintf("Load %.2f", h.load1)))

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
