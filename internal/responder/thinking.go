package responder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

const (
	AppName = "go-wikichat"

	thinkingAgentName   = "thinking_agent"
	thinkingInstruction = `You are a careful research assistant. Think step by step before answering.
When the question is about people, places, companies, historical events or scientific concepts,
use the available tools to check the facts, as many times as you need.
Answer the user's question directly once you are confident.`
)

// ErrNoAnswer indica que o agente terminou sem produzir texto final
var ErrNoAnswer = errors.New("agent finished without a final answer")

// ThinkingConfig configura o agente do modo thinking
type ThinkingConfig struct {
	Model    model.LLM
	Tools    []tool.Tool
	Toolsets []tool.Toolset
	Verbose  bool
}

// Thinking executa um llmagent com ferramentas para cada pergunta
type Thinking struct {
	agent    agent.Agent
	runner   *runner.Runner
	sessions *SessionManager
	verbose  bool
}

// NewThinking cria o agente, o SessionService em memória e o runner
func NewThinking(cfg ThinkingConfig) (*Thinking, error) {
	a, err := llmagent.New(llmagent.Config{
		Name:        thinkingAgentName,
		Model:       cfg.Model,
		Description: "Reasoning agent that can search Wikipedia.",
		Instruction: thinkingInstruction,
		Tools:       cfg.Tools,
		Toolsets:    cfg.Toolsets,
		GenerateContentConfig: &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.3),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionService := session.InMemoryService()

	agentRunner, err := runner.New(runner.Config{
		AppName:        AppName,
		Agent:          a,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Thinking{
		agent:    a,
		runner:   agentRunner,
		sessions: NewSessionManager(sessionService, AppName),
		verbose:  cfg.Verbose,
	}, nil
}

// Agent retorna o agente ADK, usado pelo launcher de console
func (t *Thinking) Agent() agent.Agent {
	return t.agent
}

// Answer executa o agente numa sessão efêmera e devolve a última resposta textual
func (t *Thinking) Answer(ctx context.Context, question string) (string, error) {
	chatSess, err := t.sessions.Open(ctx)
	if err != nil {
		return "", err
	}
	defer t.sessions.Close(ctx, chatSess)

	userContent := &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: question}},
	}

	var answer string
	for event, err := range t.runner.Run(ctx, chatSess.UserID, chatSess.ID, userContent, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent run: %w", err)
		}
		if event == nil {
			continue
		}
		if t.verbose {
			logEvent(chatSess.ID, event.Author, event.Content)
		}
		if text, ok := answerText(event.Content); ok {
			answer = text
		}
	}

	if strings.TrimSpace(answer) == "" {
		return "", ErrNoAnswer
	}
	return answer, nil
}

// answerText extrai o texto de uma mensagem do modelo que não envolve ferramentas
func answerText(content *genai.Content) (string, bool) {
	if content == nil || content.Role == "user" {
		return "", false
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil || part.FunctionResponse != nil {
			return "", false
		}
		if part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	text := b.String()
	return text, strings.TrimSpace(text) != ""
}

func logEvent(sessionID, author string, content *genai.Content) {
	if content == nil {
		return
	}
	for _, part := range content.Parts {
		switch {
		case part == nil:
		case part.FunctionCall != nil:
			log.Printf("[%s] %s -> tool %s(%v)", sessionID, author, part.FunctionCall.Name, part.FunctionCall.Args)
		case part.FunctionResponse != nil:
			log.Printf("[%s] tool %s returned", sessionID, part.FunctionResponse.Name)
		case part.Thought:
			log.Printf("[%s] %s thought: %s", sessionID, author, part.Text)
		case part.Text != "":
			log.Printf("[%s] %s: %s", sessionID, author, part.Text)
		}
	}
}
