// Package main provides the entry point for the facultyscout server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facultyscout",
	Short: "Faculty matching pipeline server",
	Long:  "facultyscout matches a free-text research profile against university faculty by running a four-stage generation pipeline, streaming progress to the caller as stages complete.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
