package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/dispatcher"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
	"github.com/akolanti/DocRouter/internal/job"
	"github.com/akolanti/DocRouter/internal/metrics"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

// DocumentRecords is the record store plus its write history.
type DocumentRecords interface {
	documentModel.RecordStore
	History(ctx context.Context, docID string) ([]documentModel.HistoryEntry, error)
}

type Dependencies struct {
	Jobs       *job.Service
	Classifier dispatcher.Service
	Records    DocumentRecords
}

type JobHandler struct {
	service    *job.Service
	classifier dispatcher.Service
	records    DocumentRecords
}

func InitJobHandler(deps Dependencies) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:    deps.Jobs,
			classifier: deps.Classifier,
			records:    deps.Records,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})
}

func CreateNewJob(ctx context.Context, newJob newJobData) error {
	log := logJH.With("traceId", newJob.traceId, "jobId", newJob.id)
	log.Info("To create new job", "docId", newJob.document.docID)
	return handlerInstance.pushToJobChannel(ctx, newJob, log)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// private methods
func (h *JobHandler) pushToJobChannel(ctx context.Context, newJob newJobData, log *logger_i.Logger) error {
	_job := jobModel.Job{
		Id:          newJob.id,
		TraceId:     newJob.traceId,
		CreatedTime: time.Now(),
		Status:      jobModel.JobStatusQueued,
		CurrentStep: jobModel.ClassifyInit,
		Payload: jobModel.JobPayload{
			DocumentID:   newJob.document.docID,
			DeclaredType: newJob.document.declaredType,
			Metadata:     newJob.document.metadata,
		},
	}

	// stored without content so /status answers before a worker picks the job up
	if err := h.service.JobStore.SaveJob(ctx, _job); err != nil {
		log.Error("Could not save queued job", "error", err)
		return err
	}
	_job.Payload.Content = newJob.document.content

	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	log.Info("Created new job")

	//we start a new worker every RequestsPerNewWorkerCount requests
	//idle workers retire on their own so the pool shrinks back once traffic drops
	accurateCount, scaleUp := h.service.CountQueued()
	if scaleUp {
		metrics.StartDispatcherSignalCount()
		log.Debug("Signalling dispatcher", "requestCount", accurateCount)
		if !h.service.SignalDispatcher() {
			log.Debug("Dispatcher signal already pending")
		}
	}
	return nil
}
