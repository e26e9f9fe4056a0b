package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimtrunov/MovieBuddy/internal/config"
)

const version = "0.1.0"

var (
	configPath string
	envFile    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moviebuddy",
		Short: "Find movies by title on OMDb",
		Long: "MovieBuddy looks up movies by title (and optionally release year) on OMDb\n" +
			"and shows poster, runtime, cast, rating and plot for every match.\n" +
			"Use it from the terminal, the web, Telegram or an MCP client.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadDotEnv(envFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/moviebuddy.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newSearchCmd(),
		newBotCmd(),
		newMCPServeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "MovieBuddy v%s\n", version)
		},
	}
}
