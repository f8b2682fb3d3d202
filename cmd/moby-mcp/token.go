package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

var tokenBytes int

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a random bearer token",
	Long: `Generate a cryptographically random bearer token suitable for the
auth.token config key or the MOBY_AUTH_TOKEN environment variable.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().IntVar(&tokenBytes, "bytes", 32, "token entropy in bytes")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenBytes < 16 {
		return fmt.Errorf("token entropy too low: %d bytes (minimum 16)", tokenBytes)
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("read random bytes: %w", err)
	}

	fmt.Println(base64.RawURLEncoding.EncodeToString(buf))
	return nil
}
