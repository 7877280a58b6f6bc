package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

type RecordDeleter interface {
	DeleteRecord(ctx context.Context, datasheetID, recordID string) (any, error)
}

type DeleteRecordHandler struct {
	Service RecordDeleter
}

func deleteRecordTool() mcp.Tool {
	return mcp.NewTool(aitable.OpDeleteRecord,
		mcp.WithDescription("Delete a record from an AITable.ai datasheet. Returns the API response, or the HTTP status when the response is empty."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		datasheetIDParam(),
		recordIDParam(),
	)
}

func (h *DeleteRecordHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasheetID, err := requireString(req, argDatasheetID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordID, err := requireString(req, argRecordID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.Service.DeleteRecord(ctx, datasheetID, recordID)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}
