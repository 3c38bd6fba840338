package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_classified_total",
	Help: "Documents classified, labelled by declared file type and resolved intent",
}, []string{"file_type", "intent"})

var handlerResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "handler_results_total",
	Help: "Type handler outcomes by agent and status",
}, []string{"agent", "status"})

var dispatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dispatch_failures_total",
	Help: "Classification requests that failed before a summary was written",
}, []string{"reason"})

var actionPublish = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "action_publish_total",
	Help: "Downstream action events published, by outcome",
}, []string{"status"})

var countJobsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_jobs_in_queue",
	Help: "Number of jobs in queue",
})

var dispatcherSignalCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementJobsInQueue() {
	countJobsInQueue.Inc()
}

func DecrementJobsInQueue() {
	countJobsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CaptureClassification(fileType, intent string) {
	documentsClassified.WithLabelValues(fileType, intent).Inc()
}

func CaptureHandlerResult(agent, status string) {
	handlerResults.WithLabelValues(agent, status).Inc()
}

func CaptureDispatchFailure(reason string) {
	dispatchFailures.WithLabelValues(reason).Inc()
}

func CaptureActionPublish(status string) {
	actionPublish.WithLabelValues(status).Inc()
}

var handlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "handler_duration_seconds",
	Help:    "Time spent inside a type handler.",
	Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
}, []string{"agent"})

var jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "classification_job_duration_seconds",
	Help:    "Total time spent on an async classification job.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

func CaptureExecutionMetrics(agent string, timeElapsed time.Duration) {
	handlerDuration.WithLabelValues(agent).Observe(timeElapsed.Seconds())
}

func CaptureJobMetrics(label string, timeElapsed time.Duration) {
	jobDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
