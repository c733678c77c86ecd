package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "genai",
	Short: "Retrieval-augmented question answering over your documents",
	Long: `Gen-Ai indexes a directory of plain-text documents into a local
vector index and answers questions strictly from their contents,
citing the passages it used. Questions the documents cannot answer
get the reply "Not in docs." instead of a guess.`,
}

func Execute() error {
	// Credentials such as OPENAI_API_KEY may live in a local .env file.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".genai.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
