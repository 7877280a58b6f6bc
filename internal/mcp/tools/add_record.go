package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

type RecordAdder interface {
	AddRecord(ctx context.Context, datasheetID string, fields aitable.Fields) (any, error)
}

type AddRecordHandler struct {
	Service RecordAdder
}

func addRecordTool() mcp.Tool {
	return mcp.NewTool(aitable.OpAddRecord,
		mcp.WithDescription("Add a record to an AITable.ai datasheet. The fields object maps field names to values and is sent as-is."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		datasheetIDParam(),
		fieldsParam("Field values for the new record, e.g. {\"Name\": \"Alice\"}"),
	)
}

func (h *AddRecordHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasheetID, err := requireString(req, argDatasheetID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fields, err := parseFields(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.Service.AddRecord(ctx, datasheetID, fields)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}
