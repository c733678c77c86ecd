package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/progress"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question against the indexed documents",
	Long: `Answers one question from the indexed documents and prints the reply
with its citations. Builds the index first if none is persisted.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

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

	var reporter progress.Reporter = progress.Silent{}
	if !jsonOutput {
		reporter = progress.NewReporter()
	}

	svc, err := ragservice.BuildOrLoad(ctx, cfg, embedder, provider, reporter)
	if err != nil {
		return err
	}

	answer, err := svc.Answer(ctx, args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	printAnswer(answer)
	return nil
}
