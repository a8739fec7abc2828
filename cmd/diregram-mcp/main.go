// Package main provides the diregram-mcp binary — MCP server for AI agents.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	dmcp "github.com/nexusmap/diregram/pkg/ecosystem/mcp"
)

var version = "dev"

func main() {
	s := dmcp.NewServer(version)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
