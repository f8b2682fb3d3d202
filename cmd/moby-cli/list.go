package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [remote-path]",
	Short: "List a directory on the server",
	Long: `List the contents of a directory on the server.

Without an argument, lists the storage root. Files whose extension is not
on the server's allow-list are omitted from the listing; directories are
always shown.

Examples:
  moby-cli list
  moby-cli list notes
  moby-cli list --json archive/2026`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(_ *cobra.Command, args []string) error {
	remotePath := ""
	if len(args) > 0 {
		remotePath = args[0]
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	result, err := client.List(context.Background(), remotePath)
	if err != nil {
		formatter := getFormatter()
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	formatter := getFormatter()
	return formatter.FormatList(os.Stdout, result)
}
