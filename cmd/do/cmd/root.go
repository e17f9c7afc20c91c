package cmd

import (
	"encoding/json"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/templui/goalnote/internal/config"
)

const defaultEnvFile = ".env"

// Root builds the do command tree.
func Root() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "do",
		Short:        "Development tools for goalnote",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFile(envFile)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file read before the environment")

	root.AddCommand(DevCmd(), MigrateCmd(), ConfigCmd())
	return root
}

// loadEnvFile fills unset variables from path. Only the default file may be
// missing.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) && path == defaultEnvFile {
		return nil
	}
	return err
}

func ConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration without secrets",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(config.Load().Sanitized())
		},
	}
}
