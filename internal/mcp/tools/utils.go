package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/aitable-mcp/internal/aitable"
)

const (
	argDatasheetID = "datasheet_id"
	argRecordID    = "record_id"
	argFields      = "fields"
	argFilePath    = "file_path"
)

// requireString only checks presence and type. Ids are opaque and passed
// through unchanged, blank ones included; the API decides what is valid.
func requireString(req mcp.CallToolRequest, key string) (string, error) {
	value, err := req.RequireString(key)
	if err != nil {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// parseFields accepts the fields argument as a JSON object or as a string
// holding one; some hosts stringify nested arguments.
func parseFields(req mcp.CallToolRequest) (aitable.Fields, error) {
	raw, ok := req.GetArguments()[argFields]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%s is required", argFields)
	}
	switch v := raw.(type) {
	case map[string]any:
		return aitable.Fields(v), nil
	case string:
		var fields aitable.Fields
		if err := json.Unmarshal([]byte(v), &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%s must be a JSON object", argFields)
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("%s must be an object mapping field names to values", argFields)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func datasheetIDParam() mcp.ToolOption {
	return mcp.WithString(argDatasheetID,
		mcp.Required(),
		mcp.Description("AITable datasheet (table) ID, e.g. 'dstXXXXXXXXXXXXXX'"),
	)
}

func recordIDParam() mcp.ToolOption {
	return mcp.WithString(argRecordID,
		mcp.Required(),
		mcp.Description("Record ID within the datasheet, e.g. 'recXXXXXXXXXX'"),
	)
}

func fieldsParam(desc string) mcp.ToolOption {
	return mcp.WithObject(argFields,
		mcp.Required(),
		mcp.Description(desc),
		mcp.AdditionalProperties(true),
	)
}
