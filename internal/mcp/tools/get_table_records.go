package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

type RecordLister interface {
	ListRecords(ctx context.Context, datasheetID string) (any, error)
}

type GetTableRecordsHandler struct {
	Service RecordLister
}

func getTableRecordsTool() mcp.Tool {
	return mcp.NewTool(aitable.OpListRecords,
		mcp.WithDescription("Fetch records from an AITable.ai datasheet (table). Returns the API response with the records and their fields."),
		mcp.WithReadOnlyHintAnnotation(true),
		datasheetIDParam(),
	)
}

func (h *GetTableRecordsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasheetID, err := requireString(req, argDatasheetID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.Service.ListRecords(ctx, datasheetID)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}
