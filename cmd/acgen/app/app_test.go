package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/acgen/pkg/errors"
	"github.com/agentstation/acgen/pkg/registry"
)

const testManifest = `bin: mycli
topicSeparator: " "
topics:
  - name: db
    description: database commands
plugins:
  - name: core
    commands:
      - id: db:migrate
        summary: run migrations
        flags:
          dry-run:
            summary: Print the plan
`

func newTestApp(t *testing.T, config *Config, opts ...Option) *App {
	t.Helper()
	if config.LogOutput == "" {
		config.LogOutput = "discard"
	}
	opts = append([]Option{WithConfig(config), WithFs(afero.NewMemMapFs())}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	require.NoError(t, err)
	return app
}

// commandIDs returns the ids of the visible commands.
func commandIDs(host *registry.Config) []string {
	var ids []string
	for _, cmd := range host.Commands() {
		if !cmd.Hidden {
			ids = append(ids, cmd.ID)
		}
	}
	return ids
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t, &Config{})

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.NotNil(t, app.Fs())
}

func TestApp_HostFromCommandTree(t *testing.T) {
	app := newTestApp(t, &Config{CacheDir: "/cache", Shell: "zsh"})

	host, err := app.Host()
	require.NoError(t, err)

	assert.Equal(t, "acgen", host.Bin)
	assert.Equal(t, "/cache", host.CacheDir)
	assert.Equal(t, "zsh", host.Shell)
	assert.Equal(t, registry.SeparatorSpace, host.TopicSeparator)

	ids := commandIDs(host)
	assert.Contains(t, ids, "version")
	assert.Contains(t, ids, "manifest")
	assert.NotContains(t, ids, "autocomplete:create", "hidden commands are not completed")
}

func TestApp_HostFromManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mycli.yaml", []byte(testManifest), 0o644))

	app := newTestApp(t, &Config{Manifest: "/mycli.yaml", CacheDir: "/cache", Shell: "bash"}, WithFs(fs))

	host, err := app.Host()
	require.NoError(t, err)
	assert.Equal(t, "mycli", host.Bin)
	assert.Equal(t, "/cache", host.CacheDir)
	assert.Equal(t, "bash", host.Shell)
	assert.Equal(t, []string{"db:migrate"}, commandIDs(host))
}

func TestApp_HostMissingManifest(t *testing.T) {
	app := newTestApp(t, &Config{Manifest: "/missing.yaml", CacheDir: "/cache"})

	_, err := app.Host()
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Operation)
}

func TestApp_HostDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/xdg")
	t.Setenv("HOME", "/home/me")

	dir, err := defaultCacheDir("", "mycli")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, "mycli"), dir)

	dir, err = defaultCacheDir("/explicit", "mycli")
	require.NoError(t, err)
	assert.Equal(t, "/explicit", dir)
}

func TestApp_Host_Singleton(t *testing.T) {
	app := newTestApp(t, &Config{CacheDir: "/cache"})

	const goroutines = 50
	var wg sync.WaitGroup
	hosts := make([]*registry.Config, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			host, err := app.Host()
			assert.NoError(t, err)
			hosts[idx] = host
		}(i)
	}
	wg.Wait()

	for _, host := range hosts {
		assert.Same(t, hosts[0], host)
	}
}

func TestApp_WithHost(t *testing.T) {
	fixed := &registry.Config{Bin: "fixed"}
	app := newTestApp(t, &Config{}, WithHost(fixed))

	host, err := app.Host()
	require.NoError(t, err)
	assert.Same(t, fixed, host)
}

func TestApp_ExecuteVersion(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &Config{}, WithOutput(&out))

	require.NoError(t, app.Execute(context.Background(), []string{"version"}))
	assert.Equal(t, "acgen version 1.0.0\n", out.String())

	out.Reset()
	require.NoError(t, app.Execute(context.Background(), []string{"version", "-v"}))
	assert.Contains(t, out.String(), "commit: abc123")
	assert.Contains(t, out.String(), "built by: test")
}

func TestApp_ExecuteAutocompleteCreate(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/mycli.yaml", []byte(testManifest), 0o644))

	app := newTestApp(t, &Config{CacheDir: "/cache", Shell: "fish"}, WithFs(fs))
	err := app.Execute(context.Background(), []string{"--manifest", "/mycli.yaml", "autocomplete", "create"})
	require.NoError(t, err)

	for _, path := range []string{
		"/cache/autocomplete/functions/bash/mycli.bash",
		"/cache/autocomplete/functions/zsh/_mycli",
		"/cache/autocomplete/functions/fish/mycli.fish",
	} {
		exists, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, exists, path)
	}
}

func TestApp_ExecuteAutocompleteScript(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &Config{CacheDir: "/cache"}, WithOutput(&out))

	require.NoError(t, app.Execute(context.Background(), []string{"autocomplete", "script", "bash"}))
	assert.Equal(t,
		"\nexport ACGEN_AC_BASH_SETUP_PATH=\"/cache/autocomplete/bash_setup\" && test -f \"$ACGEN_AC_BASH_SETUP_PATH\" && source \"$ACGEN_AC_BASH_SETUP_PATH\"; # acgen autocomplete setup\n",
		out.String())
}

func TestApp_ExecuteManifest(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &Config{CacheDir: "/cache"}, WithOutput(&out))

	require.NoError(t, app.Execute(context.Background(), []string{"manifest"}))
	parsed, err := registry.ParseManifest(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "acgen", parsed.Bin)
	assert.Contains(t, commandIDs(parsed), "version")
}
