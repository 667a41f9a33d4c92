package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pinkpantherking/calassist/internal/config"
	"github.com/pinkpantherking/calassist/internal/genai"
	"github.com/pinkpantherking/calassist/internal/orchestrator"
	"github.com/pinkpantherking/calassist/internal/server"
)

func newChatCmd() *cobra.Command {
	var (
		configPath string
		model      string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive scheduling assistant",
		Long: `Chat starts an interactive session with a local Ollama model that can
convert times between cities and plan meetings across timezones. Once you
have authorized with 'calassist auth' it can also read and write your
Google Calendar.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(configPath, model, verbose)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	cmd.Flags().StringVar(&model, "model", "", "Override the configured Ollama model")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log model round-trips and tool calls")

	return cmd
}

func runChat(configPath, model string, verbose bool) error {
	// .env is optional; it carries the OAuth client credentials in dev.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	if model != "" {
		cfg.Ollama.Model = model
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sc, err := server.NewServerContext(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sc.Shutdown() }()

	registry, err := buildToolRegistry(sc, logger)
	if err != nil {
		return err
	}

	client := genai.NewOllamaClient(cfg.Ollama.Model, cfg.Ollama.BaseURL).
		WithTemperature(float32(cfg.Ollama.Temperature))

	orch := orchestrator.New(client, registry, orchestrator.Config{
		MaxIterations:     cfg.MaxIterations,
		StepTimeout:       cfg.StepTimeout,
		SystemInstruction: genai.SystemInstruction(time.Now(), cfg.OrganizerZone, cfg.CalendarID),
		Model:             cfg.Ollama.Model,
		Logger:            logger,
	})

	prompt := color.New(color.FgGreen, color.Bold).SprintFunc()
	answer := color.New(color.FgCyan, color.Bold).SprintFunc()
	notice := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("%s (model %s, organizer zone %s)\n", prompt("calassist"), cfg.Ollama.Model, cfg.OrganizerZone)
	fmt.Println("Type your request and press Enter. Type 'exit' or press Ctrl+C to quit.")
	fmt.Println()

	transcript := orchestrator.NewTranscript()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(prompt("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			break
		}

		result, err := orch.Run(ctx, transcript, input)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Println(notice("Make sure Ollama is running with: ollama serve"))
			continue
		}

		fmt.Printf("%s %s\n", answer("Assistant:"), result.Text)
		if result.Incomplete {
			fmt.Println(notice("(stopped early: tool-call budget exhausted)"))
		}
		fmt.Println()

		if ctx.Err() != nil {
			break
		}
	}

	return scanner.Err()
}
