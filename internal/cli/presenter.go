package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/threadcalc/internal/errors"
	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/orchestration"
	"github.com/agbru/threadcalc/internal/ui"
)

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements the orchestration presentation interfaces
// for terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per estimator with its value,
// error and duration. Padding is computed manually because of ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.EstimationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth := len("Estimator")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
	}
	fmt.Fprintf(out, "%sEstimator%s%s   %sEstimate%s%s   %sError%s%s   %sDuration%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameWidth-len("Estimator")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", 22-len("Estimate")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", 10-len("Error")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "%s%s%s%s   %sFailure (%v)%s\n",
				ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameWidth-len(res.Name)),
				ui.ColorRed(), res.Err, ui.ColorReset())
			continue
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%.20f%s   %-10.3e   %s%s%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameWidth-len(res.Name)),
			ui.ColorMagenta(), res.Estimate.Value, ui.ColorReset(),
			res.Estimate.AbsError(),
			ui.ColorYellow(), format.FormatExecutionDuration(res.Duration()), ui.ColorReset())
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final estimate.
func (CLIResultPresenter) PresentResult(result orchestration.EstimationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietEstimate(out, result.Estimate)
		return
	}
	DisplayEstimate(out, result.Estimate, result.ElapsedSeconds)
	if opts.Verbose {
		DisplayEstimateDetails(out, result.Name, result.Estimate)
	}
}

// HandleError prints err with the active colors and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, duration, out, CLIColorProvider{})
}
