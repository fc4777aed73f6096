package service

import (
	"context"
	"log"

	"github.com/vitormoschetta/go-wikichat/internal/model"
)

// Lookup busca texto de referência para uma consulta
type Lookup interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// FastResponder faz uma única chamada ao modelo com o template fixo
type FastResponder interface {
	Complete(ctx context.Context, question, reference string) (string, error)
}

// ThinkingAgent delega a pergunta a um agente que decide sozinho quando buscar
type ThinkingAgent interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Dispatcher escolhe o pipeline de acordo com o modo da requisição.
// Não guarda estado entre chamadas; pode ser usado por várias goroutines.
type Dispatcher struct {
	lookup   Lookup
	fast     FastResponder
	thinking ThinkingAgent
}

// NewDispatcher cria um Dispatcher com os colaboradores informados
func NewDispatcher(lookup Lookup, fast FastResponder, thinking ThinkingAgent) *Dispatcher {
	return &Dispatcher{
		lookup:   lookup,
		fast:     fast,
		thinking: thinking,
	}
}

// Dispatch valida a mensagem e o modo e chama exatamente um pipeline.
// Erros de entrada casam com ErrInvalidInput; falhas externas são *DownstreamError.
func (d *Dispatcher) Dispatch(ctx context.Context, message string, mode model.Mode) (string, error) {
	if message == "" {
		return "", invalidInput("No message provided")
	}

	log.Printf("Received message: '%s' in mode: '%s'", message, mode)

	switch mode {
	case model.ModeFast:
		reference, err := d.lookup.Lookup(ctx, message)
		if err != nil {
			return "", &DownstreamError{Stage: StageLookup, Err: err}
		}
		answer, err := d.fast.Complete(ctx, message, reference)
		if err != nil {
			return "", &DownstreamError{Stage: StageFast, Err: err}
		}
		return answer, nil

	case model.ModeThinking:
		answer, err := d.thinking.Answer(ctx, message)
		if err != nil {
			return "", &DownstreamError{Stage: StageThinking, Err: err}
		}
		return answer, nil

	default:
		return "", invalidInput("Invalid mode")
	}
}
