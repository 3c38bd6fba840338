package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/DocRouter/internal/adapter"
	"github.com/akolanti/DocRouter/internal/adapter/utils"
	"github.com/akolanti/DocRouter/internal/api"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id       string
	traceId  string
	document uploadedDocument
}

type uploadedDocument struct {
	docID        string
	declaredType string
	content      []byte
	metadata     documentModel.Metadata
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ProcessHandler godoc
// @Summary      Classify a document synchronously
// @Description  Uploads a document, classifies it by type and intent, runs the matching handler and returns the classification.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Document to classify (pdf, json, eml, txt)"
// @Param        file_type  formData  string  false  "Overrides the type taken from the file extension"
// @Param        doc_id     formData  string  false  "Document id, generated when absent"
// @Param        metadata   formData  string  false  "Caller metadata as a JSON object"
// @Success      200  {object}  documentModel.ClassificationResult
// @Failure      400  {object}  api.JobResponse  "Missing file or bad metadata"
// @Failure      415  {object}  api.JobResponse  "Unsupported file type"
// @Failure      500  {object}  api.JobResponse  "File processing failed"
// @Router       /process [post]
func ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	doc, ok := readUpload(w, r)
	if !ok {
		return
	}

	log := logRH.WithTrace(r.Context()).With("docId", doc.docID, "fileType", doc.declaredType)
	result, err := handlerInstance.classifier.Classify(r.Context(), doc.content, doc.declaredType, doc.docID, doc.metadata)
	if err != nil {
		log.Error("Processing error", "error", err)
		code, message := classifyFailure(err)
		WriteErrorResponse(w, code, doc.docID, message)
		return
	}
	writeJsonResponse(w, http.StatusOK, result)
}

// ProcessAsyncHandler godoc
// @Summary      Queue a document for classification
// @Description  Same input as /process. The document is queued on the worker pool and a job id is returned to poll.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Document to classify (pdf, json, eml, txt)"
// @Param        file_type  formData  string  false  "Overrides the type taken from the file extension"
// @Param        doc_id     formData  string  false  "Document id, generated when absent"
// @Param        metadata   formData  string  false  "Caller metadata as a JSON object"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Missing file or bad metadata"
// @Failure      415  {object}  api.JobResponse      "Unsupported file type"
// @Router       /process/async [post]
func ProcessAsyncHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	doc, ok := readUpload(w, r)
	if !ok {
		return
	}
	if _, err := documentModel.ParseContentType(doc.declaredType); err != nil {
		WriteErrorResponse(w, http.StatusUnsupportedMediaType, doc.docID, "unsupported type")
		return
	}

	newJob := newJobData{
		id:       utils.GetNewUUID(),
		traceId:  logger_i.TraceID(r.Context()),
		document: doc,
	}
	if err := CreateNewJob(r.Context(), newJob); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, doc.docID, "could not queue job")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id, doc.docID))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of an async classification job.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, logger_i.TraceID(r.Context()))

	logRH.Debug("Get Status Request", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// GetMemoryHandler godoc
// @Summary      Get the stored record of a document
// @Tags         Memory
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  documentModel.Record
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Failure      500  {object}  api.JobResponse  "Internal server error"
// @Router       /memory/{id} [get]
func GetMemoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	docID := utils.GetChiURLParam(r, "id")
	record, ok := loadRecord(w, r, docID)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, record)
}

// GetHistoryHandler godoc
// @Summary      List the writes recorded for a document
// @Tags         Memory
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.HistoryResponse
// @Failure      404  {object}  api.JobResponse  "Document not found"
// @Router       /memory/{id}/history [get]
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	docID := utils.GetChiURLParam(r, "id")
	if _, ok := loadRecord(w, r, docID); !ok {
		return
	}
	entries, err := handlerInstance.records.History(r.Context(), docID)
	if err != nil {
		logRH.WithTrace(r.Context()).Error("History retrieval failed", "docId", docID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docID, "Internal server error")
		return
	}
	if entries == nil {
		entries = []documentModel.HistoryEntry{}
	}
	writeJsonResponse(w, http.StatusOK, api.HistoryResponse{DocID: docID, Entries: entries})
}

// PatchMemoryHandler godoc
// @Summary      Merge fields into a document record
// @Description  Top-level keys replace stored keys; extracted_fields is merged key by key. Creates the record when absent.
// @Tags         Memory
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Document ID"
// @Param        request  body  map[string]interface{}  true  "Fields to merge"
// @Success      200  {object}  documentModel.Record
// @Failure      400  {object}  api.JobResponse  "Body is not a JSON object"
// @Router       /memory/{id} [patch]
func PatchMemoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r) {
		return
	}
	docID := utils.GetChiURLParam(r, "id")
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the patch reader", "error", err)
		}
	}(r.Body)

	var delta map[string]any
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil || delta == nil {
		logRH.Warn("Bad patch request", "docId", docID, "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, docID, "body must be a JSON object")
		return
	}
	if err := handlerInstance.records.Merge(r.Context(), docID, delta); err != nil {
		logRH.WithTrace(r.Context()).Error("Merge failed", "docId", docID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docID, "Internal server error")
		return
	}
	record, ok := loadRecord(w, r, docID)
	if !ok {
		return
	}
	writeJsonResponse(w, http.StatusOK, record)
}

func classifyFailure(err error) (int, string) {
	if errors.Is(err, documentModel.ErrUnsupportedType) {
		return http.StatusUnsupportedMediaType, "unsupported type"
	}
	return http.StatusInternalServerError, "File processing failed"
}
