package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/progress"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/vectorindex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from your documents",
	Long: `Scans the configured document directory, chunks and embeds every
file, and persists the resulting vector index. Subsequent runs reuse
the persisted index unless --rebuild is given.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("rebuild", false, "discard any persisted index and re-embed from scratch")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
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

	rebuild, _ := cmd.Flags().GetBool("rebuild")
	indexPath := filepath.Join(cfg.IndexDir, vectorindex.IndexFileName)
	if rebuild {
		if err := os.Remove(indexPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing persisted index: %w", err)
		}
	}

	if _, err := ragservice.BuildOrLoad(ctx, cfg, embedder, provider, progress.NewReporter()); err != nil {
		return err
	}

	fmt.Printf("Index ready at %s\n", indexPath)
	return nil
}
