package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/progress"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-answering session",
	Long: `Opens a terminal session where each line is answered from the indexed
documents. Type "exit" or "quit" (or press Ctrl-D) to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}

	svc, err := ragservice.BuildOrLoad(ctx, cfg, embedder, provider, progress.NewReporter())
	if err != nil {
		return err
	}

	fmt.Println("Ask about your documents. Type \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}

		answer, err := svc.Answer(ctx, line)
		if err != nil {
			if errors.Is(err, ragservice.ErrEmptyQuestion) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		fmt.Print("Bot: ")
		printAnswer(answer)
		fmt.Println()
	}
}
