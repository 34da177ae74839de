// Command digest-mcp exposes the summarization pipeline as an MCP stdio
// server with a single tool, summarize_document. Agents hand it extracted
// document text and receive one bounded summary back.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docdigest/doc-digest/internal/config"
	"github.com/docdigest/doc-digest/internal/summarize"
	"github.com/docdigest/doc-digest/internal/util"
)

const (
	serverName = "doc-digest"
	version    = "0.1.0"
)

func main() {
	// MCP uses stdout for the protocol; all logging goes to stderr.
	log.SetOutput(os.Stderr)

	config.LoadEnv()

	pipeline, err := summarize.NewPipelineFromEnv()
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	s := server.NewMCPServer(serverName, version)
	s.AddTool(summarizeTool(), summarizeHandler(pipeline))

	log.Printf("[MCP] %s v%s listening on stdio", serverName, version)
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func summarizeTool() mcp.Tool {
	return mcp.NewTool("summarize_document",
		mcp.WithDescription("Summarize arbitrarily long extracted document text "+
			"(PDF text, video transcript, markdown) into a single bounded-length summary. "+
			"Long input is chunked and reduced map-reduce style before the final pass."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The extracted document text to summarize"),
		),
		mcp.WithString("title",
			mcp.Description("Document title, referenced by the final summary prompt"),
		),
		mcp.WithString("source",
			mcp.Description("Origin of the text (file path, URL), referenced by the final summary prompt"),
		),
	)
}

func summarizeHandler(pipeline *summarize.Pipeline) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		vars := map[string]string{
			"title":  req.GetString("title", "document"),
			"source": req.GetString("source", "unknown"),
		}

		summary, err := pipeline.Summarize(ctx, text, vars)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
		}

		log.Printf("[MCP] summarize_document done: %s", util.TruncateRunes(summary, 80))
		return mcp.NewToolResultText(summary), nil
	}
}
