package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/careerpilot/internal/config"
	"github.com/jonathan/careerpilot/internal/server"
)

var tokenUserID string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a user",
	Long:  `Generate a signed JWT for the given user ID, using JWT_SECRET from the environment.`,
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User UUID (a fresh one is generated when omitted)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID := uuid.New()
	if tokenUserID != "" {
		parsed, err := uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid user ID: %w", err)
		}
		userID = parsed
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return err
	}

	cmd.Printf("user: %s\ntoken: %s\n", userID, token)
	return nil
}
