package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <remote-path>",
	Short: "Create a directory on the server",
	Long: `Create a directory on the server.

The parent directory must already exist; create nested paths one level
at a time.

Examples:
  moby-cli mkdir archive
  moby-cli mkdir archive/2026`,
	Args: cobra.ExactArgs(1),
	RunE: runMkdir,
}

func runMkdir(_ *cobra.Command, args []string) error {
	remotePath := args[0]

	client, err := getClient()
	if err != nil {
		return err
	}

	if err := client.Mkdir(context.Background(), remotePath); err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatMkdir(os.Stdout, remotePath)
}
