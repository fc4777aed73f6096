package server

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/go-wikichat/internal/responder"
	"github.com/vitormoschetta/go-wikichat/internal/service"
)

// LookupInput são os argumentos da ferramenta MCP de busca
type LookupInput struct {
	Query string `json:"query" jsonschema:"search query for Wikipedia"`
}

// LookupOutput é o resultado estruturado da ferramenta MCP de busca
type LookupOutput struct {
	Result string `json:"result"`
}

// NewMCPServer expõe a busca na Wikipedia como ferramenta MCP
func NewMCPServer(lookup service.Lookup) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{Name: "go-wikichat", Version: "v1.0.0"}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        responder.LookupToolName,
		Description: responder.LookupToolDescription,
	}, func(ctx context.Context, req *mcp.CallToolRequest, in LookupInput) (*mcp.CallToolResult, LookupOutput, error) {
		text, err := lookup.Lookup(ctx, in.Query)
		if err != nil {
			return nil, LookupOutput{}, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, LookupOutput{Result: text}, nil
	})

	return srv
}

// NewMCPHandler serve o servidor MCP via streamable HTTP
func NewMCPHandler(lookup service.Lookup) http.Handler {
	srv := NewMCPServer(lookup)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv
	}, nil)
}
