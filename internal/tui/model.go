// Package tui implements the interactive pi-parallel dashboard: one progress
// bar per worker, host load in the header and the results once the workers
// have joined.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/threadcalc/internal/clock"
	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/metrics"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/sysmon"
)

// Layout constants.
const (
	tickInterval   = 500 * time.Millisecond
	minBarWidth    = 10
	maxBarWidth    = 60
	fixedRows      = 12 // header, panel borders, titles, overall bar, metrics, footer
	minWorkerRows  = 3
	workerRowExtra = 24 // label, percentage and padding around each bar
)

// Options configures a dashboard run.
type Options struct {
	Estimators []pi.Estimator
	N          int
	Clock      clock.Clock
	Sampler    sysmon.Sampler
	Version    string
	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header HeaderModel
	keymap KeyMap
	help   help.Model
	bar    progressbar.Model

	ctx        context.Context
	cancel     context.CancelFunc
	ref        *programRef
	estimators []pi.Estimator
	n          int
	clk        clock.Clock
	sampler    sysmon.Sampler

	current  int
	workers  []float64
	average  float64
	eta      time.Duration
	offset   int
	mem      metrics.MemorySnapshot
	results  []orchestration.EstimationResult
	done     bool
	quitting bool

	width  int
	height int
}

// NewModel creates the dashboard model. cancel is called when the user quits
// before the run is complete.
func NewModel(ctx context.Context, cancel context.CancelFunc, opts Options) Model {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = sysmon.System
	}
	workers := 0
	if len(opts.Estimators) > 0 {
		workers = opts.Estimators[0].Workers()
	}
	return Model{
		header:     NewHeaderModel(clk, opts.Version),
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		bar:        progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithoutPercentage()),
		ctx:        ctx,
		cancel:     cancel,
		ref:        &programRef{},
		estimators: opts.Estimators,
		n:          opts.N,
		clk:        clk,
		sampler:    sampler,
		workers:    make([]float64, workers),
	}
}

// Init starts the estimation and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		sampleSysStatsCmd(m.sampler),
		startRunCmd(m.ref, m.ctx, m.estimators, m.n, m.clk),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-workerRowExtra, minBarWidth), maxBarWidth)
		m.offset = m.clampOffset(m.offset)
		return m, nil

	case EstimatorStartedMsg:
		m.current = msg.Index
		m.workers = make([]float64, msg.NumWorkers)
		m.average, m.eta, m.offset = 0, 0, 0
		return m, nil

	case WorkerProgressMsg:
		m.current = msg.Estimator
		if msg.Worker >= 0 && msg.Worker < len(m.workers) {
			m.workers[msg.Worker] = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		for i := range m.workers {
			m.workers[i] = 1
		}
		m.average, m.eta = 1, 0
		return m, nil

	case RunCompleteMsg:
		m.results = msg.Results
		m.done = true
		m.header.SetDone()
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(m.sampler), tickCmd())

	case SysStatsMsg:
		m.header.UpdateSysStats(sysmon.Stats(msg))
		return m, nil

	case MemStatsMsg:
		m.mem = metrics.MemorySnapshot(msg)
		return m, nil
	}
	return m, nil
}

// handleKey processes key presses. Workers cannot be interrupted, so quitting
// a running estimation cancels the context and waits for the join.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.done {
			return m, tea.Quit
		}
		if !m.quitting {
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Up):
		m.offset = m.clampOffset(m.offset - 1)
	case key.Matches(msg, m.keymap.Down):
		m.offset = m.clampOffset(m.offset + 1)
	case key.Matches(msg, m.keymap.PageUp):
		m.offset = m.clampOffset(m.offset - m.visibleWorkers())
	case key.Matches(msg, m.keymap.PageDown):
		m.offset = m.clampOffset(m.offset + m.visibleWorkers())
	}
	return m, nil
}

// visibleWorkers returns how many worker rows fit in the window.
func (m Model) visibleWorkers() int {
	if m.height == 0 {
		return len(m.workers)
	}
	return max(m.height-fixedRows, minWorkerRows)
}

func (m Model) clampOffset(offset int) int {
	return min(max(offset, 0), max(len(m.workers)-m.visibleWorkers(), 0))
}

// Results returns the estimation results, or nil before completion.
func (m Model) Results() []orchestration.EstimationResult { return m.results }

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	var body strings.Builder
	body.WriteString(m.viewProgress())
	body.WriteString("\n")
	body.WriteString(m.viewMemory())
	if m.done {
		body.WriteString("\n\n")
		body.WriteString(m.viewResults())
	}

	panel := panelStyle.Width(max(m.width-2, 0)).Render(body.String())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panel, m.viewFooter())
}

func (m Model) viewProgress() string {
	var b strings.Builder
	name := "-"
	if m.current >= 0 && m.current < len(m.estimators) {
		name = m.estimators[m.current].Name()
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s intervals  estimator %d/%d",
		format.FormatNumberString(strconv.Itoa(m.n)), m.current+1, len(m.estimators))))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s %s  %s\n",
		workerLabelStyle.Render(fmt.Sprintf("%-10s", "overall")),
		m.bar.ViewAs(m.average),
		valueStyle.Render(fmt.Sprintf("%6.2f%%", m.average*100)),
		dimStyle.Render("ETA: "+format.FormatETA(m.eta)))

	visible := m.visibleWorkers()
	end := min(m.offset+visible, len(m.workers))
	for w := m.offset; w < end; w++ {
		fmt.Fprintf(&b, "%s %s %s\n",
			workerLabelStyle.Render(fmt.Sprintf("worker %3d", w)),
			m.bar.ViewAs(m.workers[w]),
			valueStyle.Render(fmt.Sprintf("%6.2f%%", m.workers[w]*100)))
	}
	if hidden := len(m.workers) - (end - m.offset); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d more workers, scroll with ↑/↓\n", hidden)))
	}
	return b.String()
}

func (m Model) viewMemory() string {
	pipe := dimStyle.Render(" | ")
	return dimStyle.Render("Heap: ") + valueStyle.Render(formatBytes(m.mem.HeapAlloc)) + pipe +
		dimStyle.Render("GC: ") + valueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6)) + pipe +
		dimStyle.Render("Goroutines: ") + valueStyle.Render(strconv.Itoa(m.mem.Goroutines))
}

func (m Model) viewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Results"))
	for _, r := range m.results {
		b.WriteString("\n")
		if r.Err != nil {
			fmt.Fprintf(&b, "%s %s", workerLabelStyle.Render(r.Name), errorStyle.Render("failed: "+r.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "%s  %s  %s  %s",
			workerLabelStyle.Render(r.Name),
			successStyle.Render(fmt.Sprintf("%.20f", r.Estimate.Value)),
			dimStyle.Render(fmt.Sprintf("error %.3e", r.Estimate.AbsError())),
			accentStyle.Render(format.FormatExecutionDuration(r.Duration())))
	}
	return b.String()
}

func (m Model) viewFooter() string {
	var status string
	switch {
	case m.done:
		status = statusDoneStyle.Render("Done")
	case m.quitting:
		status = statusWaitingStyle.Render("Waiting for workers to join...")
	default:
		status = statusRunningStyle.Render("Running")
	}
	return " " + status + "  " + m.help.View(m.keymap)
}

func formatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// Run shows the dashboard while the estimators run and returns their
// results. It returns once the user quits after completion, or as soon as
// the run completes when the user asked to quit earlier.
func Run(ctx context.Context, opts Options) ([]orchestration.EstimationResult, error) {
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, cancel, opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(model, programOpts...)
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	m, ok := finalModel.(Model)
	if !ok || !m.done {
		return nil, errors.New("dashboard exited before the run completed")
	}
	return m.results, nil
}

// startRunCmd runs the estimators and reports their results.
func startRunCmd(ref *programRef, ctx context.Context, estimators []pi.Estimator, n int, clk clock.Clock) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		results := orchestration.ExecuteEstimations(ctx, estimators, n, clk, reporter, io.Discard)
		return RunCompleteMsg{Results: results}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(metrics.ReadMemory())
	}
}

func sampleSysStatsCmd(s sysmon.Sampler) tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(s.Sample())
	}
}
