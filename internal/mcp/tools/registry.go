package tools

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
)

// Adapter handles one tool invocation.
type Adapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// RecordService is everything the AITable tools need from the API client.
type RecordService interface {
	RecordLister
	RecordAdder
	RecordUpdater
	RecordDeleter
	AttachmentUploader
}

// Definition pairs a tool's name, description and input schema with its
// handler.
type Definition struct {
	Tool    mcp.Tool
	Adapter Adapter
}

// Registry is the set of tools offered to the host, keyed by tool name.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry registers the five AITable tools against svc.
func NewRegistry(svc RecordService) *Registry {
	r := &Registry{defs: map[string]Definition{}}
	r.Register(getTableRecordsTool(), &GetTableRecordsHandler{Service: svc})
	r.Register(addRecordTool(), &AddRecordHandler{Service: svc})
	r.Register(updateRecordTool(), &UpdateRecordHandler{Service: svc})
	r.Register(deleteRecordTool(), &DeleteRecordHandler{Service: svc})
	r.Register(uploadAttachmentTool(), &UploadAttachmentHandler{Service: svc})
	return r
}

// Register adds or replaces the tool named tool.Name.
func (r *Registry) Register(tool mcp.Tool, adapter Adapter) {
	r.defs[tool.Name] = Definition{Tool: tool, Adapter: adapter}
}

func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns every definition ordered by name.
func (r *Registry) Definitions() []Definition {
	names := r.Names()
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, r.defs[name])
	}
	return defs
}

// Call invokes the named tool with args, outside of any MCP session.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	def, ok := r.defs[name]
	if !ok {
		return mcp.NewToolResultErrorf("unknown tool %q", name), nil
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return def.Adapter.ToolAdapter(ctx, req)
}
