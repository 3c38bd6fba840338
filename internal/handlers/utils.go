package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/akolanti/DocRouter/internal/adapter"
	"github.com/akolanti/DocRouter/internal/adapter/utils"
	"github.com/akolanti/DocRouter/internal/config"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/internal/domain/jobModel"
)

const untitledUpload = "untitled"

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil && logRH != nil {
		// the status line is already out
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(w http.ResponseWriter, r *http.Request) bool {
	if handlerInstance == nil {
		WriteErrorResponse(w, http.StatusServiceUnavailable, "", "service not ready")
		return false
	}
	ctx := r.Context()
	if ctx.Err() != nil {
		logRH.WithTrace(ctx).Warn("context error", "error", ctx.Err(), "remoteAddr", r.RemoteAddr)
		return false
	}
	return true
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// readUpload parses the multipart form shared by the process endpoints. On failure it
// has already written the response.
func readUpload(w http.ResponseWriter, r *http.Request) (uploadedDocument, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return uploadedDocument{}, false
	}

	fileReader, fileHeader, err := r.FormFile("file")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "No file provided")
		return uploadedDocument{}, false
	}
	defer fileReader.Close()

	content, err := io.ReadAll(fileReader)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not read file")
		return uploadedDocument{}, false
	}

	filename := fileHeader.Filename
	if filename == "" {
		filename = untitledUpload
	}

	doc := uploadedDocument{
		docID:        r.FormValue("doc_id"),
		declaredType: r.FormValue("file_type"),
		content:      content,
	}
	if doc.declaredType == "" {
		doc.declaredType = utils.FileExtension(filename)
	}
	if doc.docID == "" {
		doc.docID = utils.GetNewUUID()
	}

	callerMetadata := documentModel.Metadata{}
	if raw := r.FormValue("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &callerMetadata); err != nil || callerMetadata == nil {
			WriteErrorResponse(w, http.StatusBadRequest, doc.docID, "metadata must be a JSON object")
			return uploadedDocument{}, false
		}
	}
	doc.metadata = callerMetadata.With(map[string]any{
		documentModel.MetaFilename: filename,
		documentModel.MetaSize:     len(content),
	})
	return doc, true
}

func loadRecord(w http.ResponseWriter, r *http.Request, docID string) (documentModel.Record, bool) {
	record, found, err := handlerInstance.records.Get(r.Context(), docID)
	if err != nil {
		logRH.WithTrace(r.Context()).Error("Memory retrieval failed", "docId", docID, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docID, "Internal server error")
		return documentModel.Record{}, false
	}
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, docID, "Document not found")
		return documentModel.Record{}, false
	}
	return record, true
}
