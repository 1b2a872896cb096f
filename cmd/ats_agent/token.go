package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the /api endpoints",
	Long:  "Signs a JWT with the configured jwt_secret (JWT_SECRET env var). The client ID is random unless --client-id is given.",
	RunE:  runToken,
}

var tokenClientID string

func init() {
	tokenCmd.Flags().StringVar(&tokenClientID, "client-id", "", "Client UUID to embed in the token")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	jwtCfg, err := a.cfg.JWT()
	if err != nil {
		return err
	}

	clientID := uuid.New()
	if tokenClientID != "" {
		if clientID, err = uuid.Parse(tokenClientID); err != nil {
			return fmt.Errorf("invalid --client-id: %w", err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(clientID)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
