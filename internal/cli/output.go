// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/agbru/threadcalc/internal/fibonacci"
	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/ui"
)

// DisplayEstimate prints an estimate and its timing in the classic layout.
func DisplayEstimate(out io.Writer, est pi.Estimate, elapsedSeconds float64) {
	fmt.Fprintf(out, "\npi is approximately = %.20f \nError               = %.20f\n", est.Value, est.AbsError())
	fmt.Fprintf(out, "Time elapsed: %.6f seconds\n", elapsedSeconds)
}

// DisplayQuietEstimate prints only the estimated value.
func DisplayQuietEstimate(out io.Writer, est pi.Estimate) {
	fmt.Fprintf(out, "%.20f\n", est.Value)
}

// DisplayEstimateDetails prints the per-worker breakdown of an estimate.
func DisplayEstimateDetails(out io.Writer, name string, est pi.Estimate) {
	fmt.Fprintf(out, "\n%s--- %s ---%s\n", ui.ColorBold(), name, ui.ColorReset())
	fmt.Fprintf(out, "Intervals: %s%s%s, workers: %s%d%s\n",
		ui.ColorMagenta(), format.FormatNumberString(strconv.Itoa(est.Intervals)), ui.ColorReset(),
		ui.ColorMagenta(), est.Workers, ui.ColorReset())
	for w, c := range est.Chunks {
		var partial float64
		if w < len(est.Partials) {
			partial = est.Partials[w]
		}
		duration := "-"
		if w < len(est.WorkerDurations) {
			duration = format.FormatExecutionDuration(est.WorkerDurations[w])
		}
		fmt.Fprintf(out, "  %sworker %3d%s  [%d, %d)  %d intervals  partial %.6f  %s%s%s\n",
			ui.ColorBlue(), w, ui.ColorReset(), c.Start, c.End, c.Len(), partial,
			ui.ColorYellow(), duration, ui.ColorReset())
	}
	if len(est.WorkerDurations) > 1 {
		fmt.Fprintf(out, "  Worker spread: %s%s%s\n",
			ui.ColorYellow(), format.FormatWorkerSpread(est.WorkerDurations), ui.ColorReset())
	}
}

// FormatSequence joins values with single spaces.
func FormatSequence(seq fibonacci.Sequence) string {
	var b strings.Builder
	for i, v := range seq {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}

// FormatExactSequence joins arbitrary-precision values with single spaces.
func FormatExactSequence(seq []*big.Int) string {
	parts := make([]string, len(seq))
	for i, v := range seq {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// DisplaySequence prints a sequence, preceded by a header unless quiet.
func DisplaySequence(out io.Writer, body string, elements int, quiet bool) {
	if !quiet {
		fmt.Fprintf(out, "Fibonacci sequence (first %d elements):\n", elements)
	}
	fmt.Fprintln(out, body)
}
