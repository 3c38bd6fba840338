package api

import (
	"time"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id         string            `json:"id" example:"5f1c9a2e-8d1b-4c55-9a8e-1f2a3b4c5d6e"`
	DocumentID string            `json:"document_id,omitempty" example:"doc_550"`
	Result     Result            `json:"result"`
	Error      *JobOutgoingError `json:"error,omitempty"`
	StartTime  time.Time         `json:"start_time"`
	EndTime    time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"415"`
	Message string `json:"message" example:"unsupported type"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status         string                              `json:"status"`
	Classification *documentModel.ClassificationResult `json:"classification,omitempty"`
}

type InitJobResponse struct {
	Id         string `json:"id"`
	DocumentID string `json:"document_id"`
	StatusURL  string `json:"status_url"`
}

type HistoryResponse struct {
	DocID   string                       `json:"doc_id"`
	Entries []documentModel.HistoryEntry `json:"entries"`
}
