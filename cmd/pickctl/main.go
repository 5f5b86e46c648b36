package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	host    string
	token   string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "pickctl",
	Short: "A CLI to interact with the pick'em league server",
	Long: `A command-line interface for reading games and standings from a
running pick'em league API and triggering week reconciles.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PICKCTL_TOKEN"), "Bearer token (defaults to $PICKCTL_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "pickctl: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
