package clientcli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylangroos/moby-mcp/clientcli"
)

func TestConfigFile_GetProfile(t *testing.T) {
	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "dev", Endpoint: "http://localhost:8000", Token: "dev-token"},
			{Name: "prod", Endpoint: "https://files.example.com", Token: "prod-token", Default: true},
		},
	}

	p, err := cf.GetProfile("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev-token", p.Token)

	// Empty name resolves the default profile
	p, err = cf.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, "prod", p.Name)

	_, err = cf.GetProfile("staging")
	assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
}

func TestConfigFile_GetProfile_NoProfiles(t *testing.T) {
	cf := &clientcli.ConfigFile{}

	_, err := cf.GetProfile("")

	assert.ErrorIs(t, err, clientcli.ErrNoProfiles)
}

func TestConfigFile_GetDefaultProfile_FallsBackToFirst(t *testing.T) {
	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "first"},
			{Name: "second"},
		},
	}

	p, err := cf.GetDefaultProfile()
	require.NoError(t, err)
	assert.Equal(t, "first", p.Name)
}

func TestConfigFile_AddProfile_Duplicate(t *testing.T) {
	cf := &clientcli.ConfigFile{}

	require.NoError(t, cf.AddProfile(clientcli.Profile{Name: "dev"}))

	err := cf.AddProfile(clientcli.Profile{Name: "dev"})
	assert.ErrorIs(t, err, clientcli.ErrProfileExists)
}

func TestConfigFile_UpdateProfile(t *testing.T) {
	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{{Name: "dev", Token: "old"}},
	}

	err := cf.UpdateProfile(clientcli.Profile{Name: "dev", Token: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", cf.Profiles[0].Token)

	err = cf.UpdateProfile(clientcli.Profile{Name: "missing"})
	assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
}

func TestConfigFile_RemoveProfile(t *testing.T) {
	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{{Name: "dev"}, {Name: "prod"}},
	}

	require.NoError(t, cf.RemoveProfile("dev"))
	assert.Equal(t, []string{"prod"}, cf.ProfileNames())

	err := cf.RemoveProfile("dev")
	assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
}

func TestConfigFile_SetDefault(t *testing.T) {
	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "dev", Default: true},
			{Name: "prod"},
		},
	}

	require.NoError(t, cf.SetDefault("prod"))
	assert.False(t, cf.Profiles[0].Default)
	assert.True(t, cf.Profiles[1].Default)

	err := cf.SetDefault("missing")
	assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
}

func TestConfigFile_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "dev", Endpoint: "http://localhost:8000", Token: "secret", Default: true},
		},
	}
	require.NoError(t, cf.Save(path))

	// Config carries tokens, so permissions are owner-only
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := clientcli.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cf.Profiles, loaded.Profiles)
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "dev", Endpoint: "http://localhost:8000", Token: "dev-token"},
			{Name: "prod", Endpoint: "https://files.example.com", Token: "prod-token", Default: true},
		},
	}
	require.NoError(t, cf.Save(path))

	cfg, err := clientcli.LoadConfigFromFile(path, "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.Endpoint)
	assert.Equal(t, "dev-token", cfg.Token)

	cfg, err = clientcli.LoadConfigFromFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "prod-token", cfg.Token)
}

func TestLoadConfigFromFile_ProfileFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cf := &clientcli.ConfigFile{
		Profiles: []clientcli.Profile{
			{Name: "dev", Token: "dev-token"},
			{Name: "prod", Token: "prod-token", Default: true},
		},
	}
	require.NoError(t, cf.Save(path))

	t.Setenv("MOBY_PROFILE", "dev")

	cfg, err := clientcli.LoadConfigFromFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "dev-token", cfg.Token)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MOBY_ENDPOINT", "https://files.example.com")
	t.Setenv("MOBY_TOKEN", "env-token")

	cfg := clientcli.ConfigFromEnv()

	assert.Equal(t, "https://files.example.com", cfg.Endpoint)
	assert.Equal(t, "env-token", cfg.Token)
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := (&clientcli.Config{}).WithDefaults()
	assert.Equal(t, clientcli.DefaultEndpoint, cfg.Endpoint)

	cfg = (&clientcli.Config{Endpoint: "https://files.example.com"}).WithDefaults()
	assert.Equal(t, "https://files.example.com", cfg.Endpoint)
}

func TestMergeConfig(t *testing.T) {
	fileCfg := &clientcli.Config{Endpoint: "http://file:8000", Token: "file-token"}
	envCfg := &clientcli.Config{Token: "env-token"}
	flagCfg := &clientcli.Config{Endpoint: "http://flag:8000"}

	merged := clientcli.MergeConfig(fileCfg, envCfg, flagCfg)

	assert.Equal(t, "http://flag:8000", merged.Endpoint)
	assert.Equal(t, "env-token", merged.Token)
}

func TestMergeConfig_NilEntries(t *testing.T) {
	merged := clientcli.MergeConfig(nil, &clientcli.Config{Token: "x"}, nil)

	assert.Equal(t, "x", merged.Token)
}
