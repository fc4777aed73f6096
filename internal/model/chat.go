package model

// Mode seleciona o pipeline que responde a pergunta
type Mode string

const (
	// ModeFast busca na Wikipedia e faz uma única chamada ao modelo barato
	ModeFast Mode = "fast"
	// ModeThinking delega a pergunta ao agente com ferramentas
	ModeThinking Mode = "thinking"
)

// ChatRequest representa a requisição para o endpoint de chat
type ChatRequest struct {
	Message string `json:"message"`
	Mode    Mode   `json:"mode"`
}

// ChatResponse representa a resposta do endpoint de chat
type ChatResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}
