package calibration

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/ui"
)

// printCalibrationResults formats and prints the calibration table.
func printCalibrationResults(out io.Writer, n int, results []Measurement, best int) {
	fmt.Fprintf(out, "\n--- Calibration Summary (%s intervals) ---\n", format.FormatNumberString(strconv.Itoa(n)))
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 12), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Workers == best && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Fastest)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10d%s │ %s%s%s%s\n", ui.ColorCyan(), res.Workers, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
	if best > 0 {
		fmt.Fprintf(out, "\nSuggested worker count: %s%d%s\n", ui.ColorGreen(), best, ui.ColorReset())
	}
}
