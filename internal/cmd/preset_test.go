package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/preset"
)

func TestPresetList(t *testing.T) {
	env := newCLIEnv(t)
	env.writeProjectFile(t, "presets.yaml", `schema: fundplan.presets/v1
presets:
  house-style:
    description: Our usual setup
    overrides:
      jurisdiction: luxembourg
`)

	out, _, err := env.run(t, "preset", "list", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "fund-ii")
	assert.Contains(t, out, "house-style")
	assert.Contains(t, out, "Our usual setup")

	out, _, err = env.run(t, "preset", "list", "-f", "json")
	require.NoError(t, err)

	var presets []preset.Preset
	require.NoError(t, json.Unmarshal([]byte(out), &presets))
	sources := make(map[string]string)
	for _, p := range presets {
		sources[p.Name] = p.Source
	}
	assert.Equal(t, preset.SourceProject, sources["house-style"])
	assert.Equal(t, preset.SourceBuiltin, sources["mega-fund"])
}

func TestPresetShow(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run(t, "preset", "show", "fund-ii", "-f", "yaml")
	require.NoError(t, err)

	var view presetView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "fund-ii", view.Name)
	assert.Equal(t, "committed", view.Resolved.AnchorStatus)
	assert.Equal(t, "cayman", view.Resolved.Jurisdiction, "unset options resolve to the defaults")

	out, _, err = env.run(t, "preset", "show", "fund-ii", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "fund-ii (builtin)")
	assert.Contains(t, out, "have-draft-materials")
}

func TestPresetShow_Unknown(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "preset", "show", "nope")
	require.Error(t, err)
	code, _ := fperrors.CodeOf(err)
	assert.Equal(t, fperrors.ErrCodePresetUnknown, code)
}

func TestPresetShow_RequiresName(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "preset", "show")
	assert.Error(t, err)
}
