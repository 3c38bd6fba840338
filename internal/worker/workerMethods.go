package worker

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	jobmodel "github.com/akolanti/DocRouter/internal/domain/jobModel"
	"github.com/akolanti/DocRouter/internal/metrics"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()
	jobLogger := logger.With("traceId", job.TraceId, "jobId", job.Id)
	jobLogger.Debug("Processing job")

	payload := job.Payload
	job.CurrentStep = jobmodel.Dispatching
	job = saveJobState(ctx, job, jobmodel.JobStatusRunning)

	result, err := _classifier.Classify(ctx, payload.Content, payload.DeclaredType, payload.DocumentID, payload.Metadata)
	job.EndTime = time.Now()
	if err != nil {
		jobLogger.Error("Classification job failed", "error", err)
		job.CurrentStep = jobmodel.Error
		job.Error = toJobError(err)
		job = saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}

	job.Result = &result
	job.CurrentStep = jobmodel.Complete
	job = saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

func toJobError(err error) jobmodel.JobError {
	if errors.Is(err, documentModel.ErrUnsupportedType) {
		return jobmodel.JobError{Code: http.StatusUnsupportedMediaType, Message: "unsupported type"}
	}
	return jobmodel.JobError{Code: http.StatusInternalServerError, Message: "processing failed"}
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	logger.Info("Removed worker", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
	metrics.DecrementActiveWorkerCount()
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) jobmodel.Job {
	job.Status = jobStatus
	job.Payload.Content = nil
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update job state", "err", err)
	}
	return job
}
