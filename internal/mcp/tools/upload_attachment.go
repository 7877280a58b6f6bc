package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

type AttachmentUploader interface {
	UploadAttachment(ctx context.Context, datasheetID, filePath string) (any, error)
}

type UploadAttachmentHandler struct {
	Service AttachmentUploader
}

func uploadAttachmentTool() mcp.Tool {
	return mcp.NewTool(aitable.OpUploadAttachment,
		mcp.WithDescription("Upload a local file as an attachment to an AITable.ai datasheet. The file is read from the server's filesystem."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		datasheetIDParam(),
		mcp.WithString(argFilePath,
			mcp.Required(),
			mcp.Description("Path of the file to upload, on the machine running this server"),
		),
	)
}

func (h *UploadAttachmentHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	datasheetID, err := requireString(req, argDatasheetID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filePath, err := requireString(req, argFilePath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp, err := h.Service.UploadAttachment(ctx, datasheetID, filePath)
	if err != nil {
		return nil, err
	}
	return jsonResult(resp)
}
