package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dylangroos/moby-mcp/clientcli"
)

var (
	version = "dev"

	cfgFile     string
	server      string
	token       string
	profileName string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "moby-cli",
	Version: version,
	Short:   "Client for the moby-mcp file system server",
	Long: `moby-cli - client for the moby-mcp file system server

Files on the server are confined to a single root directory and a fixed
allow-list of file extensions; uploads outside the allow-list are rejected
by the server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.moby-mcp/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:8000, env: MOBY_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "bearer token (env: MOBY_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "config profile name (env: MOBY_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getConfigPath resolves the config file path from flag, env, or default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from file, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	configPath := getConfigPath()
	if configPath != "" {
		fileCfg, err := clientcli.LoadConfigFromFile(configPath, profileName)
		if err != nil {
			// Only error if user explicitly specified a config file;
			// a missing default config is fine.
			if cfgFile != "" {
				return nil, err
			}
		} else {
			configs = append(configs, fileCfg)
		}
	}

	configs = append(configs, clientcli.ConfigFromEnv())

	configs = append(configs, &clientcli.Config{
		Endpoint: server,
		Token:    token,
	})

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}
