// Package clientcli provides the client library behind the moby-cli binary.
//
// It wraps the moby-mcp HTTP API with bearer-token authentication, profile
// based configuration (~/.moby-mcp/config.yaml), and human/JSON output
// formatting.
//
// # Usage
//
//	cfg := clientcli.MergeConfig(
//	    fileCfg,                 // from a profile
//	    clientcli.ConfigFromEnv(), // MOBY_ENDPOINT / MOBY_TOKEN
//	    flagCfg,                 // --server / --token
//	)
//	client, err := clientcli.New(cfg)
//	results, err := client.Upload(ctx, clientcli.UploadOptions{
//	    LocalPath:  "./notes.txt",
//	    RemotePath: "notes/today.txt",
//	})
package clientcli
