package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DanBrus/IB-frontend/infrastructure/config"
	"github.com/DanBrus/IB-frontend/infrastructure/di"
	"github.com/DanBrus/IB-frontend/interfaces/cli"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependency container
	container, cleanup, err := di.InitializeClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer cleanup()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "board> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("Failed to initialize readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("Investigation board. Use 'help' for the list of commands.")
	container.Logger.Info("Connecting",
		zap.String("graph", cfg.GraphAPIBaseURL),
		zap.String("files", cfg.FileAPIBaseURL),
	)

	if err := container.Session.Open(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
	}

	workspace := cli.NewCLI(
		container.Session,
		container.Inspector,
		container.Images,
		container.Layout,
		rl,
		rl.Stdout(),
		container.Logger,
	)
	_ = workspace.ExecuteCommand(ctx, []string{"show"})

	if err := workspace.Loop(ctx); err != nil && err != context.Canceled {
		container.Logger.Error("Workspace stopped", zap.Error(err))
	}
	fmt.Println("Goodbye!")
}
