package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/mcptoolset"
	"google.golang.org/genai"

	"github.com/vitormoschetta/go-wikichat/internal/config"
	"github.com/vitormoschetta/go-wikichat/internal/knowledge"
	"github.com/vitormoschetta/go-wikichat/internal/responder"
	"github.com/vitormoschetta/go-wikichat/internal/service"
)

// AuthenticatedTransport adiciona o token de autenticação às requisições MCP
type AuthenticatedTransport struct {
	Base   http.RoundTripper
	Header string
	Token  string
}

func (t *AuthenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clonar a requisição para não modificar a original
	reqCopy := req.Clone(req.Context())

	if t.Token != "" {
		reqCopy.Header.Set(t.Header, t.Token)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(reqCopy)
}

// ToolInfo descreve uma ferramenta disponível para o agente
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	Config      *config.Config
	Dispatcher  *service.Dispatcher
	Thinking    *responder.Thinking
	Tools       []ToolInfo
	McpEndpoint string
	MCPHandler  http.Handler
	Router      chi.Router
}

// NewServer cria os modelos, o agente e o dispatcher a partir da configuração
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	clientConfig := &genai.ClientConfig{
		APIKey: cfg.GoogleAPIKey,
	}

	fastModel, err := gemini.NewModel(ctx, cfg.FastModel, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create fast model: %w", err)
	}

	thinkingModel, err := gemini.NewModel(ctx, cfg.ThinkingModel, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create thinking model: %w", err)
	}

	wiki := knowledge.NewWikipedia(cfg.WikipediaLang,
		knowledge.WithMaxResults(cfg.WikipediaMaxResults),
		knowledge.WithMaxChars(cfg.WikipediaMaxChars),
	)

	lookupTool, err := responder.NewLookupTool(wiki)
	if err != nil {
		return nil, err
	}

	toolsets, err := newMCPToolsets(cfg)
	if err != nil {
		return nil, err
	}

	thinking, err := responder.NewThinking(responder.ThinkingConfig{
		Model:    thinkingModel,
		Tools:    []tool.Tool{lookupTool},
		Toolsets: toolsets,
		Verbose:  cfg.AgentVerbose,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Models ready: fast=%s thinking=%s", cfg.FastModel, cfg.ThinkingModel)

	return &Server{
		Config:     cfg,
		Dispatcher: service.NewDispatcher(wiki, responder.NewFast(fastModel), thinking),
		Thinking:   thinking,
		Tools: []ToolInfo{
			{Name: lookupTool.Name(), Description: lookupTool.Description()},
		},
		McpEndpoint: cfg.McpEndpoint,
		MCPHandler:  NewMCPHandler(wiki),
	}, nil
}

// newMCPToolsets conecta o agente a um servidor MCP externo, se configurado
func newMCPToolsets(cfg *config.Config) ([]tool.Toolset, error) {
	if cfg.McpEndpoint == "" {
		return nil, nil
	}

	if cfg.McpToken == "" {
		log.Println("Warning: MCP_TOKEN is not set - MCP requests will be sent without authentication")
	}

	httpClient := &http.Client{
		Transport: &AuthenticatedTransport{
			Base:   http.DefaultTransport,
			Header: "Authorization",
			Token:  bearer(cfg.McpToken),
		},
		Timeout: 30 * time.Second,
	}

	transport := &mcp.StreamableClientTransport{
		Endpoint:   cfg.McpEndpoint,
		HTTPClient: httpClient,
	}

	log.Printf("🔌 Connecting to MCP endpoint: %s", cfg.McpEndpoint)

	mcpToolSet, err := mcptoolset.New(mcptoolset.Config{
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP tool set: %w", err)
	}

	log.Printf("✅ MCP toolset initialized successfully")
	return []tool.Toolset{mcpToolSet}, nil
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(
	handleRoot http.HandlerFunc,
	handleHealth http.HandlerFunc,
	handleChat http.HandlerFunc,
	handleTools http.HandlerFunc,
	static http.Handler,
) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
	}))

	// Rotas
	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat)
	r.Handle("/static/*", http.StripPrefix("/static/", static))

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/tools", handleTools)
	})

	if s.MCPHandler != nil {
		r.Handle("/mcp", s.MCPHandler)
	}

	s.Router = r
}

// Start inicia o servidor HTTP com graceful shutdown
func (s *Server) Start(ctx context.Context) {
	// Sem WriteTimeout: uma execução do agente pode levar mais que qualquer limite fixo
	httpServer := &http.Server{
		Addr:              s.Config.Addr(),
		Handler:           s.Router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Goroutine para iniciar o servidor
	go func() {
		base := "http://localhost" + s.Config.Addr()

		log.Println("╔════════════════════════════════════════════════════╗")
		log.Println("║   Wiki Chat - Fast & Thinking modes               ║")
		log.Println("╚════════════════════════════════════════════════════╝")
		log.Println("")
		log.Printf("🚀 Servidor HTTP iniciado na porta %s", s.Config.Addr())
		log.Println("")
		log.Println("📌 Endpoints disponíveis:")
		log.Printf("   • Chat UI:   %s/ (GET)", base)
		log.Printf("   • Health:    %s/health (GET)", base)
		log.Printf("   • Chat API:  %s/chat (POST)", base)
		log.Printf("   • Tools:     %s/api/tools (GET)", base)
		log.Printf("   • MCP:       %s/mcp", base)
		log.Println("")
		log.Println("💡 Exemplo de uso com curl:")
		log.Printf(`   curl -X POST %s/chat \`, base)
		log.Println(`        -H "Content-Type: application/json" \`)
		log.Println(`        -d '{"message":"Who was Ada Lovelace?","mode":"fast"}'`)
		log.Println("")
		log.Println("⚠️  Pressione Ctrl+C para parar o servidor")
		log.Println("")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Aguardar sinal de interrupção
	<-ctx.Done()
	log.Println("\n🛑 Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
