package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerpilot/internal/extract"
	"github.com/jonathan/careerpilot/internal/feeds"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/matching"
	"github.com/jonathan/careerpilot/internal/observability"
)

var (
	matchResumePath string
	matchConfigPath string
	matchVerbose    bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against the configured job feeds",
	Long:  `Fetch listings from the configured RSS feeds, score each against the given resume file and print the qualifying matches.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchResumePath, "resume", "", "Path to a PDF or DOCX resume (required)")
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to JSON config file")
	matchCmd.Flags().BoolVar(&matchVerbose, "verbose", false, "Print match details")
	_ = matchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	serveConfigPath = matchConfigPath
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Feeds) == 0 {
		return fmt.Errorf("no job feeds configured")
	}

	kind, err := extract.KindFromPath(matchResumePath)
	if err != nil {
		return err
	}
	resumeText, err := extract.Text(matchResumePath, kind)
	if err != nil {
		return err
	}

	sources := make([]feeds.Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, feeds.NewRSSSource(feed.Name, feed.URL))
	}

	client := llm.NewChatClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model)
	scorer := matching.NewScorer(client, sources)
	printer := observability.NewPrinter(cmd.OutOrStdout())

	listings := scorer.Collect(cmd.Context())
	if matchVerbose {
		printer.PrintListings(listings)
	}

	matches, err := scorer.MatchListings(cmd.Context(), resumeText, listings)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		cmd.Println("No matching jobs found.")
		return nil
	}

	if matchVerbose {
		printer.PrintMatches(matches)
		return nil
	}
	for _, match := range matches {
		cmd.Printf("%3d  %s\n     %s\n", match.Score, match.Title, match.Link)
	}
	return nil
}
