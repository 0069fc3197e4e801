package registry

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/acgen/pkg/errors"
)

const sampleManifest = `bin: mycli
binAliases:
- mc
topicSeparator: " "
topics:
- name: config
  description: Manage configuration
plugins:
- name: core
  commands:
  - id: config
    summary: Show configuration
  - id: config:get
    summary: Get a value
    flags:
      key:
        type: option
        options: [a, b]
      json: {}
`

func TestParseManifest(t *testing.T) {
	cfg, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "mycli", cfg.Bin)
	assert.Equal(t, []string{"mc"}, cfg.BinAliases)
	assert.Equal(t, SeparatorSpace, cfg.TopicSeparator)
	require.Len(t, cfg.Topics, 1)
	assert.Equal(t, "Manage configuration", cfg.Topics[0].Description)

	cmds := cfg.Commands()
	require.Len(t, cmds, 2)
	get := cmds[1]
	assert.Equal(t, "config:get", get.ID)

	key := get.Flags["key"]
	assert.Equal(t, "key", key.Name, "name defaults to map key")
	assert.Equal(t, FlagOption, key.Type)
	assert.Equal(t, []string{"a", "b"}, key.Options)

	json := get.Flags["json"]
	assert.Equal(t, "json", json.Name)
	assert.Equal(t, FlagBoolean, json.Type, "type defaults to boolean")
}

func TestParseManifestErrors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseManifest([]byte("bin: [unterminated"))
		require.Error(t, err)
		var perr *errors.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "yaml", perr.Format)
	})

	t.Run("invalid registry", func(t *testing.T) {
		_, err := ParseManifest([]byte("plugins: []\n"))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestLoadManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/mycli.yaml", []byte(sampleManifest), 0o644))

	cfg, err := LoadManifest(fs, "/etc/mycli.yaml")
	require.NoError(t, err)
	assert.Equal(t, "mycli", cfg.Bin)

	_, err = LoadManifest(fs, "/missing.yaml")
	require.Error(t, err)
	var ioErr *errors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Operation)
	assert.Equal(t, "/missing.yaml", ioErr.Path)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("bin: [x"), 0o644))
	_, err = LoadManifest(fs, "/bad.yaml")
	var perr *errors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/bad.yaml", perr.File)
}

func TestMarshalManifestRoundTrip(t *testing.T) {
	cfg, err := ParseManifest([]byte(sampleManifest))
	require.NoError(t, err)

	data, err := MarshalManifest(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bin: mycli")

	again, err := ParseManifest(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
