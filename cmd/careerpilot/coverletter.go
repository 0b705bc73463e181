package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/careerpilot/internal/analytics"
	"github.com/jonathan/careerpilot/internal/extract"
	"github.com/jonathan/careerpilot/internal/generate"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/observability"
)

var (
	coverLetterResumePath string
	coverLetterJobPath    string
	coverLetterTone       string
	coverLetterConfigPath string
	coverLetterVerbose    bool
)

var coverLetterCmd = &cobra.Command{
	Use:   "coverletter",
	Short: "Generate a cover letter from a resume and a job description",
	Long:  `Extract the resume text, generate a cover letter for the given job description and print it. Nothing is recorded.`,
	RunE:  runCoverLetter,
}

func init() {
	coverLetterCmd.Flags().StringVar(&coverLetterResumePath, "resume", "", "Path to a PDF or DOCX resume (required)")
	coverLetterCmd.Flags().StringVar(&coverLetterJobPath, "job", "", "Path to a job description text file (required)")
	coverLetterCmd.Flags().StringVar(&coverLetterTone, "tone", "", "Tone for the letter")
	coverLetterCmd.Flags().StringVar(&coverLetterConfigPath, "config", "", "Path to JSON config file")
	coverLetterCmd.Flags().BoolVar(&coverLetterVerbose, "verbose", false, "Print an artifact summary")
	_ = coverLetterCmd.MarkFlagRequired("resume")
	_ = coverLetterCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	serveConfigPath = coverLetterConfigPath
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	kind, err := extract.KindFromPath(coverLetterResumePath)
	if err != nil {
		return err
	}
	resumeText, err := extract.Text(coverLetterResumePath, kind)
	if err != nil {
		return err
	}
	jobDescription, err := os.ReadFile(coverLetterJobPath)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	client := llm.NewChatClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	service := generate.NewService(client, analytics.NopRecorder{})

	artifact, err := service.CoverLetter(cmd.Context(), uuid.New(), resumeText, string(jobDescription), coverLetterTone)
	if err != nil {
		return err
	}

	if coverLetterVerbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintArtifact(artifact)
	}
	cmd.Println(artifact.Document)
	return nil
}
