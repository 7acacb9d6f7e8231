package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "focus_forge",
		Short: "focus_forge - ADHD-friendly check-ins, coaching and planning API",
		Long: `focus_forge serves the HTTP API behind the focus_forge app: mood
check-ins with AI coaching, goals and tasks, Now Mode, inbox triage,
weekly planning and analytics.

Configuration comes from the environment and an optional .env file.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(serveCmd(), migrateCmd(), tokenCmd())
	return root
}
