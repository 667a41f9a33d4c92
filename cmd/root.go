package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calassist application
var rootCmd = &cobra.Command{
	Use:   "calassist",
	Short: "Timezone-aware meeting scheduling assistant",
	Long: `calassist schedules meetings across timezones and drives a local
language model that can inspect and modify your Google Calendar.

It can run as:
  - An interactive assistant (chat, the default)
  - One-shot scheduling commands (convert, schedule)
  - An MCP (Model Context Protocol) server for AI assistants (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calassist version %s\n" .Version}}`)

	// If no subcommand is provided, run the chat command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "chat")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
