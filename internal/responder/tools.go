package responder

import (
	"context"
	"fmt"

	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"
)

const (
	LookupToolName        = "wikipedia_search"
	LookupToolDescription = "Useful for when you need to answer factual questions about people, places, companies, historical events, or scientific concepts."
)

// Lookup é o colaborador de busca usado pela ferramenta do agente
type Lookup interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// LookupArgs são os argumentos que o modelo envia para a ferramenta
type LookupArgs struct {
	Query string `json:"query" jsonschema:"search query for Wikipedia, e.g. a person, place or concept"`
}

// LookupResult é o que a ferramenta devolve ao modelo
type LookupResult struct {
	Result string `json:"result"`
}

// NewLookupTool expõe a busca na Wikipedia como uma ferramenta do agente
func NewLookupTool(lookup Lookup) (tool.Tool, error) {
	t, err := functiontool.New(functiontool.Config{
		Name:        LookupToolName,
		Description: LookupToolDescription,
	}, func(ctx tool.Context, args LookupArgs) (LookupResult, error) {
		return runLookup(ctx, lookup, args)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tool: %w", LookupToolName, err)
	}
	return t, nil
}

func runLookup(ctx context.Context, lookup Lookup, args LookupArgs) (LookupResult, error) {
	text, err := lookup.Lookup(ctx, args.Query)
	if err != nil {
		return LookupResult{}, err
	}
	return LookupResult{Result: text}, nil
}
