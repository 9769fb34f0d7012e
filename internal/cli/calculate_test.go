package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/threadcalc/internal/config"
	"github.com/agbru/threadcalc/internal/pi"
)

func TestPrintExecutionConfig(t *testing.T) {
	useNoColor(t)
	var buf bytes.Buffer
	PrintExecutionConfig(config.AppConfig{N: 2_000_000_000}, &buf)
	out := buf.String()
	if !strings.Contains(out, "2,000,000,000 intervals") {
		t.Errorf("interval count not formatted: %q", out)
	}
	if !strings.Contains(out, "logical processors") {
		t.Errorf("environment line missing: %q", out)
	}
}

func TestPrintExecutionMode(t *testing.T) {
	useNoColor(t)
	var buf bytes.Buffer
	PrintExecutionMode([]pi.Estimator{pi.ParallelEstimator{NumWorkers: 3}}, &buf)
	if !strings.Contains(buf.String(), "Parallel (3 workers)") {
		t.Errorf("single mode output = %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode([]pi.Estimator{pi.ParallelEstimator{NumWorkers: 3}, pi.SerialEstimator{}}, &buf)
	if !strings.Contains(buf.String(), "comparison of 2 estimators") {
		t.Errorf("comparison mode output = %q", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(nil, &buf)
	if buf.Len() != 0 {
		t.Errorf("empty estimator list printed %q", buf.String())
	}
}
