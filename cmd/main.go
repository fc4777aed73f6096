package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	"github.com/vitormoschetta/go-wikichat/internal/config"
	"github.com/vitormoschetta/go-wikichat/internal/handler"
	"github.com/vitormoschetta/go-wikichat/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Criar servidor
	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if cfg.RunMode == config.RunModeConsole {
		startConsole(ctx, srv)
		return
	}

	// Criar handlers
	h := handler.NewHandler(srv)

	// Configurar rotas com os handlers
	srv.SetupRouter(h.HandleRoot, h.HandleHealth, h.HandleChat, h.HandleTools, h.HandleStatic())

	// Iniciar servidor
	srv.Start(ctx)
}

// startConsole executa o agente do modo thinking no launcher do ADK
func startConsole(ctx context.Context, srv *server.Server) {
	launcherConfig := &launcher.Config{
		AgentLoader: agent.NewSingleLoader(srv.Thinking.Agent()),
	}
	l := full.NewLauncher()
	if err := l.Execute(ctx, launcherConfig, os.Args[1:]); err != nil {
		log.Fatalf("Run failed: %v\n\n%s", err, l.CommandLineSyntax())
	}
}
