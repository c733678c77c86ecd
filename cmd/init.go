package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the chatbot for your documents and writes a .genai.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfgFile); err == nil && !force {
			return fmt.Errorf("%s already exists, pass --force to overwrite", cfgFile)
		}

		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		if err := cfg.Save(cfgFile); err != nil {
			return err
		}

		fmt.Printf("Wrote %s\n", cfgFile)
		if env := config.APIKeyEnvVar(cfg.Provider); env != "" {
			fmt.Printf("Set %s in your environment (or a .env file) before running `genai index`.\n", env)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
