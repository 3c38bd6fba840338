package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/DocRouter/internal/api"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
)

func ToInitJobResponse(id string, docID string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:         id,
		DocumentID: docID,
		StatusURL:  fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	return api.JobResponse{
		Id:         job.Id,
		DocumentID: job.Payload.DocumentID,
		StartTime:  job.CreatedTime,
		EndTime:    job.EndTime,
		Error:      errorPtr,
		Result: api.Result{
			Status:         string(job.Status),
			Classification: job.Result,
		},
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
