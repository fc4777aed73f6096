package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vitormoschetta/go-wikichat/internal/model"
	"github.com/vitormoschetta/go-wikichat/internal/server"
	"github.com/vitormoschetta/go-wikichat/internal/service"
	"github.com/vitormoschetta/go-wikichat/web"
)

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	server *server.Server
}

// NewHandler cria uma nova instância do Handler
func NewHandler(srv *server.Server) *Handler {
	return &Handler{
		server: srv,
	}
}

// HandleRoot serve a página de chat
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	page, err := web.Index()
	if err != nil {
		http.Error(w, "index not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// HandleStatic serve os arquivos estáticos da página
func (h *Handler) HandleStatic() http.Handler {
	return http.FileServer(http.FS(web.Static()))
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleTools retorna as ferramentas disponíveis para o agente do modo thinking
func (h *Handler) HandleTools(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	response := map[string]interface{}{
		"tools":        h.server.Tools,
		"mcp_server":   "/mcp",
		"mcp_endpoint": h.server.McpEndpoint,
	}

	json.NewEncoder(w).Encode(response)
}

// HandleChat valida a requisição e repassa ao dispatcher
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	// Parse do JSON
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error parsing JSON: %v", err)
		writeJSON(w, http.StatusBadRequest, model.ChatResponse{
			Error: "Invalid JSON format",
		})
		return
	}

	// A chamada externa não é cancelada se o cliente desconectar
	execCtx := context.WithoutCancel(r.Context())

	answer, err := h.server.Dispatcher.Dispatch(execCtx, req.Message, req.Mode)
	if err != nil {
		var downstream *service.DownstreamError
		if errors.As(err, &downstream) {
			log.Printf("Error: %s", downstream.String())
		}
		writeJSON(w, service.StatusCode(err), model.ChatResponse{
			Error: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{
		Answer: answer,
	})
}

func writeJSON(w http.ResponseWriter, status int, body model.ChatResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
