package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/gopapilo"
)

func TestLoadSettings(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
presolve.threads: 2
presolve.tlim: 30.5
dualfix.enabled: false
presolve.logfile: papilo.log
`), 0o600))

	settings, err := loadSettings(demoOptions{
		settingsFile: file,
		params:       []string{"presolve.threads=4", "presolve.logfile=", "presolve.randomseed=9"},
	})
	require.NoError(t, err)

	assert.Equal(t, gopapilo.Settings{
		"presolve.threads":    4,
		"presolve.tlim":       30.5,
		"dualfix.enabled":     false,
		"presolve.logfile":    "",
		"presolve.randomseed": 9,
	}, settings)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := loadSettings(demoOptions{params: []string{"no-equals-sign"}})
	assert.EqualError(t, err, `malformed --param "no-equals-sign", expected key=value`)

	_, err = loadSettings(demoOptions{params: []string{"=1"}})
	assert.Error(t, err)

	_, err = loadSettings(demoOptions{settingsFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- just\n- a list\n"), 0o600))
	_, err = loadSettings(demoOptions{settingsFile: bad})
	assert.Error(t, err)
}

func TestFlags(t *testing.T) {
	o := demoOptions{lower: 1, upper: 10}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(flags, &o)

	require.NoError(t, flags.Parse([]string{
		"--upper=5", "--integer=false", "--param", "a=1", "--param", "b=x", "--debug",
	}))

	assert.Equal(t, 1.0, o.lower)
	assert.Equal(t, 5.0, o.upper)
	assert.False(t, o.integer)
	assert.True(t, o.debug)
	assert.Equal(t, []string{"a=1", "b=x"}, o.params)
}
