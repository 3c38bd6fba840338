// Package mcpserver exposes classification and record lookup as MCP tools so agents can
// route documents without going through the upload form.
package mcpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/DocRouter/internal/adapter/utils"
	"github.com/akolanti/DocRouter/internal/dispatcher"
	"github.com/akolanti/DocRouter/internal/domain/documentModel"
	"github.com/akolanti/DocRouter/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolClassify    = "classify_document"
	ToolGetDocument = "get_document"
)

var implementation = &mcp.Implementation{Name: "docrouter", Version: "1.0.0"}

type tools struct {
	classifier dispatcher.Service
	records    documentModel.RecordStore
	logger     *logger_i.Logger
}

func New(classifier dispatcher.Service, records documentModel.RecordStore) *mcp.Server {
	srv := mcp.NewServer(implementation, nil)
	t := &tools{
		classifier: classifier,
		records:    records,
		logger:     logger_i.NewLogger("MCP"),
	}
	t.registerClassify(srv)
	t.registerGetDocument(srv)
	return srv
}

// Handler serves srv over streamable HTTP.
func Handler(srv *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

type classifyArgs struct {
	Content  string         `json:"content"`
	FileType string         `json:"file_type"`
	DocID    string         `json:"doc_id,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (t *tools) registerClassify(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolClassify,
		Description: "Classify a document (pdf, json, eml, txt) by business intent and route it to its handler. Binary types (pdf, eml) take base64 content.",
		InputSchema: inputSchema(map[string]any{
			"content":   map[string]any{"type": "string", "description": "Document body; base64 for pdf and eml"},
			"file_type": map[string]any{"type": "string", "description": "One of pdf, json, eml, txt"},
			"doc_id":    map[string]any{"type": "string", "description": "Optional document id, generated when absent"},
			"metadata":  map[string]any{"type": "object"},
		}, []string{"content", "file_type"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args classifyArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return errorResult(fmt.Errorf("invalid arguments: %w", err)), nil
		}

		content, err := decodeContent(args.Content, args.FileType)
		if err != nil {
			return errorResult(err), nil
		}
		if args.DocID == "" {
			args.DocID = utils.GetNewUUID()
		}

		result, err := t.classifier.Classify(ctx, content, args.FileType, args.DocID, args.Metadata)
		if err != nil {
			t.logger.WithTrace(ctx).Warn("Tool classification failed", "docId", args.DocID, "error", err)
			return errorResult(err), nil
		}
		return jsonResult(result)
	})
}

type getDocumentArgs struct {
	DocID string `json:"doc_id"`
}

func (t *tools) registerGetDocument(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolGetDocument,
		Description: "Return the latest processing record stored for a document id.",
		InputSchema: inputSchema(map[string]any{
			"doc_id": map[string]any{"type": "string"},
		}, []string{"doc_id"}),
	}

	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args getDocumentArgs
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil || args.DocID == "" {
			return errorResult(errors.New("invalid arguments: doc_id is required")), nil
		}

		record, found, err := t.records.Get(ctx, args.DocID)
		if err != nil {
			return errorResult(fmt.Errorf("%w: %v", documentModel.ErrStoreUnavailable, err)), nil
		}
		if !found {
			return errorResult(fmt.Errorf("%w: %s", documentModel.ErrNotFound, args.DocID)), nil
		}
		return jsonResult(record)
	})
}

// decodeContent reverses the base64 transport encoding used for binary types.
func decodeContent(content, fileType string) ([]byte, error) {
	switch documentModel.ContentType(strings.ToLower(strings.TrimSpace(fileType))) {
	case documentModel.ContentPDF, documentModel.ContentEML:
		raw, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return nil, fmt.Errorf("content must be base64 for %s: %w", fileType, err)
		}
		return raw, nil
	default:
		return []byte(content), nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Errorf("marshal: %w", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}
