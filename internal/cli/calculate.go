package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/agbru/threadcalc/internal/config"
	"github.com/agbru/threadcalc/internal/format"
	"github.com/agbru/threadcalc/internal/pi"
	"github.com/agbru/threadcalc/internal/ui"
)

// PrintExecutionConfig describes the upcoming run: interval count, worker
// count and environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Integrating 4/(1+x^2) over [0, 1) with %s%s%s intervals.\n",
		ui.ColorMagenta(), format.FormatNumberString(strconv.FormatInt(cfg.N, 10)), ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode lists the estimators about to run.
func PrintExecutionMode(estimators []pi.Estimator, out io.Writer) {
	if len(estimators) == 0 {
		return
	}
	if len(estimators) > 1 {
		fmt.Fprintf(out, "Execution mode: comparison of %d estimators.\n", len(estimators))
	} else {
		fmt.Fprintf(out, "Execution mode: %s%s%s.\n", ui.ColorGreen(), estimators[0].Name(), ui.ColorReset())
	}
}
