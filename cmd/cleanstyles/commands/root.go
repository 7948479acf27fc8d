// Package commands implements the CLI commands for cleanstyles.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khawkins98/ckeditor-clean-styles/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cleanstyles",
	Short: "Strip word-processor artifacts from pasted HTML",
	Long: `Cleanstyles removes document-authoring artifacts from HTML fragments:
inline styles, vendor CSS classes (MsoNormal and friends), vendor
attributes and namespaced elements, non-breaking-space placeholders,
and the paragraphs those removals leave empty.

Examples:
  # Clean a pasted fragment from stdin
  pbpaste | cleanstyles clean

  # Clean a file and write the result
  cleanstyles clean -o cleaned.html paste.html

  # Batch mode with per-file reports
  cleanstyles clean --stats-only --format jsonl pages/*.html

  # Custom rule table
  cleanstyles clean --rules rules.yaml paste.html`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug: viper.GetBool("debug"),
			Quiet: viper.GetBool("quiet"),
			JSON:  viper.GetBool("log_json"),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.cleanstyles.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".cleanstyles")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("CLEANSTYLES")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
