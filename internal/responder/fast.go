package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// ErrEmptyCompletion indica que o modelo respondeu sem nenhum texto
var ErrEmptyCompletion = errors.New("model returned an empty completion")

const fastTemplate = `
You are a 'Fast Mode' AI assistant. Your job is to directly answer the user's question.
1. I will give you a user's question.
2. I will provide you with relevant search results from Wikipedia.
3. You must use *only* this information to answer the question as concisely as possible.
4. If the information is not in the search results, just say 'I couldn't find a quick answer for that.'

Question: %s
Wikipedia Results: %s

Your concise answer:
`

// FastPrompt monta o prompt fixo do modo rápido
func FastPrompt(question, reference string) string {
	return fmt.Sprintf(fastTemplate, question, reference)
}

// Fast responde com uma única chamada ao modelo barato
type Fast struct {
	llm    model.LLM
	config *genai.GenerateContentConfig
}

// NewFast cria o responder do modo rápido com temperatura zero
func NewFast(llm model.LLM) *Fast {
	return &Fast{
		llm: llm,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0),
		},
	}
}

// Complete envia o template preenchido ao modelo e devolve o texto completo
func (f *Fast) Complete(ctx context.Context, question, reference string) (string, error) {
	llmRequest := &model.LLMRequest{
		Model: f.llm.Name(),
		Contents: []*genai.Content{
			{
				Role:  "user",
				Parts: []*genai.Part{{Text: FastPrompt(question, reference)}},
			},
		},
		Config: f.config,
	}

	var responseText strings.Builder
	for response, err := range f.llm.GenerateContent(ctx, llmRequest, false) {
		if err != nil {
			return "", fmt.Errorf("fast model %s: %w", f.llm.Name(), err)
		}
		if response == nil || response.Content == nil {
			continue
		}
		for _, part := range response.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				responseText.WriteString(part.Text)
			}
		}
	}

	answer := responseText.String()
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("fast model %s: %w", f.llm.Name(), ErrEmptyCompletion)
	}
	return answer, nil
}
