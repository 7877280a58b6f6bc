package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

type RecordUpdater interface {
	UpdateRecord(ctx context.Context, datasheetID, recordID string, fields aitable.Fields) (any, error)
}

type UpdateRecordHandler struct {
	Service RecordUpdater
}

func updateRecordTool() mcp.Tool {
	return mcp.NewTool(aitable.OpUpdateRecord,
		mcp.WithDescription("Update a record in an AITable.ai datasheet. Only the fields given are changed."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		datasheetIDParam(),
		recordIDParam(),
		fieldsParam("Field values to set on the record"),
	)
}

func (h *UpdateRecordHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasheetID, err := requireString(req, argDatasheetID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordID, err := requireString(req, argRecordID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, err := parseFields(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.Service.UpdateRecord(ctx, datasheetID, recordID, fields)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}
