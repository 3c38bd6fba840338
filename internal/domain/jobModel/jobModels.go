package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ClassifyInit InternalStatus = "Init"
	Dispatching  InternalStatus = "Dispatching"
	Error        InternalStatus = "Error"
	Complete     InternalStatus = "Complete"
)

type Job struct {
	Id          string                              `json:"id"`
	TraceId     string                              `json:"trace_id"`
	Payload     JobPayload                          `json:"job_payload"`
	Result      *documentModel.ClassificationResult `json:"result,omitempty"`
	Error       JobError                            `json:"error,omitempty"`
	CreatedTime time.Time                           `json:"created_time"`
	EndTime     time.Time                           `json:"end_time,omitempty"`
	Status      JobStatus                           `json:"status"`
	CurrentStep InternalStatus                      `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// JobPayload carries the document through the queue. Content never reaches the job store.
type JobPayload struct {
	DocumentID   string                 `json:"document_id"`
	DeclaredType string                 `json:"declared_type"`
	Metadata     documentModel.Metadata `json:"metadata,omitempty"`
	Content      []byte                 `json:"-"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
