// Package metrics collects run metrics of the threadcalc programs and
// exports them in the Prometheus text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "threadcalc"

// Recorder holds the metrics of a single run in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	info           *prometheus.GaugeVec
	runDuration    *prometheus.GaugeVec
	estimate       *prometheus.GaugeVec
	absError       *prometheus.GaugeVec
	intervals      prometheus.Gauge
	workers        prometheus.Gauge
	elements       prometheus.Gauge
	workerDuration *prometheus.GaugeVec
	cpuSeconds     *prometheus.GaugeVec
	heapAllocBytes prometheus.Gauge
	gcCycles       prometheus.Gauge
	maxRSS         prometheus.Gauge
}

// NewRecorder creates a Recorder labelled with program and runID. Go runtime
// metrics are included.
func NewRecorder(program, runID string) *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_info",
			Help: "Constant 1, labelled with the program and run identifier.",
		}, []string{"program", "run_id"}),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help: "Wall time of the computation.",
		}, []string{"estimator"}),
		estimate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pi_estimate",
			Help: "Estimated value of pi.",
		}, []string{"estimator"}),
		absError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pi_abs_error",
			Help: "Absolute difference between the estimate and the reference value.",
		}, []string{"estimator"}),
		intervals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "intervals",
			Help: "Number of integration intervals.",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "workers",
			Help: "Number of workers of the parallel estimator.",
		}),
		elements: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "fibonacci_elements",
			Help: "Length of the generated Fibonacci sequence.",
		}),
		workerDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "worker_duration_seconds",
			Help: "Time spent by each worker on its chunk.",
		}, []string{"estimator", "worker"}),
		cpuSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "cpu_seconds",
			Help: "CPU time consumed by the process, by mode.",
		}, []string{"mode"}),
		heapAllocBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "heap_alloc_bytes",
			Help: "Heap bytes in use at the end of the run.",
		}),
		gcCycles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "gc_cycles",
			Help: "Completed GC cycles at the end of the run.",
		}),
		maxRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "max_rss",
			Help: "Peak resident set size as reported by getrusage.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		r.info, r.runDuration, r.estimate, r.absError,
		r.intervals, r.workers, r.elements, r.workerDuration,
		r.cpuSeconds, r.heapAllocBytes, r.gcCycles, r.maxRSS,
	)
	r.info.WithLabelValues(program, runID).Set(1)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveEstimate records the outcome of one π estimator.
func (r *Recorder) ObserveEstimate(estimator string, value, absError float64, elapsed time.Duration, workerDurations []time.Duration) {
	r.runDuration.WithLabelValues(estimator).Set(elapsed.Seconds())
	r.estimate.WithLabelValues(estimator).Set(value)
	r.absError.WithLabelValues(estimator).Set(absError)
	for w, d := range workerDurations {
		r.workerDuration.WithLabelValues(estimator, strconv.Itoa(w)).Set(d.Seconds())
	}
}

// ObserveSequence records a Fibonacci run.
func (r *Recorder) ObserveSequence(elements int, elapsed time.Duration) {
	r.elements.Set(float64(elements))
	r.runDuration.WithLabelValues("fibonacci").Set(elapsed.Seconds())
}

// SetWorkload records the interval and worker counts.
func (r *Recorder) SetWorkload(intervals int64, workers int) {
	r.intervals.Set(float64(intervals))
	r.workers.Set(float64(workers))
}

// ObserveUsage records process CPU usage.
func (r *Recorder) ObserveUsage(u Usage) {
	r.cpuSeconds.WithLabelValues("user").Set(u.User.Seconds())
	r.cpuSeconds.WithLabelValues("system").Set(u.System.Seconds())
	r.maxRSS.Set(float64(u.MaxRSS))
}

// ObserveMemory records a heap snapshot.
func (r *Recorder) ObserveMemory(m MemorySnapshot) {
	r.heapAllocBytes.Set(float64(m.HeapAlloc))
	r.gcCycles.Set(float64(m.NumGC))
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// suitable for the node_exporter textfile collector. The file is replaced
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
