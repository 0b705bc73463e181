// Package main provides the entry point for the CareerPilot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careerpilot",
	Short: "CareerPilot HTTP API Server",
	Long:  "CareerPilot turns a resume and a job description into tailored career artifacts: cover letters, interview prep, portfolio sites, LaTeX resumes, ATS analyses and job match alerts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
