package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nexusmap/diregram/pkg/blockschema"
	"github.com/nexusmap/diregram/pkg/explain"
	"github.com/nexusmap/diregram/pkg/report"
	"github.com/nexusmap/diregram/pkg/verify"
)

// HandleVerify implements the diregram/verify MCP tool.
func HandleVerify(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	path, _ := args["path"].(string)
	if path == "" {
		return errorResult("path argument is required"), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errorResult(fmt.Sprintf("file not found: %s", path)), nil
	}

	res := verify.Text(string(raw))

	if strict, _ := args["strict"].(bool); strict {
		extra, err := blockschema.Check(res.Table)
		if err != nil {
			return errorResult(fmt.Sprintf("schema check: %s", err)), nil
		}
		res.Issues = append(res.Issues, extra...)
	}

	var out bytes.Buffer
	errors, _ := report.Write(&out, res.Issues)

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(out.String())},
		IsError: errors > 0,
	}, nil
}

// HandleExplain implements the diregram/explain MCP tool.
func HandleExplain(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	code, _ := args["code"].(string)
	if code == "" {
		return errorResult("code argument is required"), nil
	}

	md, ok := explain.Text(code)
	if !ok {
		return errorResult(fmt.Sprintf("unknown issue code %q", code)), nil
	}
	return textResult(md), nil
}

// HandleSchema implements the diregram/schema MCP tool.
func HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	kind, _ := args["type"].(string)

	data, err := blockschema.Generate(kind)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
