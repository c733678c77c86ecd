package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/history"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/progress"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP question-answering server",
	Long: `Starts an HTTP server exposing POST /chat, GET /healthz, and
GET /history. The vector index is built (or reloaded) in the
background; /healthz reports "starting" until it is ready and
captures the failure detail if startup fails.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")
	if !allowAll {
		allowAll = cfg.Server.AllowAll
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	provider, err := createProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		historyPath := cfg.History.Path
		if historyPath == "" {
			historyPath = filepath.Join(cfg.IndexDir, "history.db")
		}
		store, err = history.Open(historyPath)
		if err != nil {
			return fmt.Errorf("opening chat log: %w", err)
		}
		defer store.Close()
	}

	rt := server.NewRuntime()
	srv := server.New(server.Config{Port: port, AllowAll: allowAll}, rt, store)

	// Index construction can take minutes on a cold start. Serve
	// immediately and report readiness through /healthz.
	go func() {
		svc, err := ragservice.BuildOrLoad(context.Background(), cfg, embedder, provider, progress.Silent{})
		if err != nil {
			log.Printf("engine startup failed: %v", err)
			rt.SetFailed(err)
			return
		}
		rt.SetReady(svc)
		log.Printf("engine ready")
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
