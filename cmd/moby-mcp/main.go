package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dylangroos/moby-mcp/config"
)

var version = "dev"

var (
	cfgFiles []string
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "moby-mcp",
	Short:   "Bearer-gated file system server over HTTP",
	Long: `moby-mcp exposes a single directory subtree over HTTP, protected by a
bearer token and restricted to an allow-list of file extensions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFiles, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&cfgFiles, "config", nil, "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "root directory to serve (default: ./data, env: MOBY_STORAGE_ROOT)")
	rootCmd.PersistentFlags().StringSlice("extensions", nil, "allowed file extensions (default: .txt,.json, env: MOBY_STORAGE_EXTENSIONS)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
