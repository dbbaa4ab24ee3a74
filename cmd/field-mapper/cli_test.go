package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	for _, expected := range []string{"version", "types", "inspect", "plan"} {
		assert.Contains(t, names, expected)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "field-mapper version: dev")
	assert.Contains(t, out, "Git commit:")
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)

	assert.Contains(t, out, "store.User\n")
	assert.Contains(t, out, "warehouse.Client\n")
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", "warehouse.client")
	require.NoError(t, err)

	assert.Contains(t, out, "field-mapper/warehouse.Client (12 fields)")
	assert.Contains(t, out, "FIELD")
	assert.Regexp(t, `Revision\s+int\s+1\s+0\.2`, out)
	assert.Regexp(t, `Email\s+\*string\s+0\s+3\s+optional`, out)

	out, err = run(t, "inspect", "store.User", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "PasswordHash")
	assert.Contains(t, out, "Ignored: (bool) true")

	_, err = run(t, "inspect", "store.Nope")
	assert.ErrorContains(t, err, "unknown type")
}

func TestPlanCommand(t *testing.T) {
	out, err := run(t, "plan", "store.User", "warehouse.Client")
	require.NoError(t, err)

	assert.Contains(t, out, "store.User -> warehouse.Client [none]")
	assert.Regexp(t, `Email\s+direct_copy`, out)
	assert.Regexp(t, `Role\s+skip: incompatible_types`, out)
	assert.Contains(t, out, "warning: Active:")

	out, err = run(t, "plan", "store.User", "warehouse.Client", "--coerce", "--copy-into")
	require.NoError(t, err)
	assert.Contains(t, out, "[copy_into|coerce_nullable]")
	assert.Regexp(t, `Active\s+nullable_coerce:unwrap`, out)
	assert.NotContains(t, out, "warning: Active:")

	out, err = run(t, "plan", "store.User", "warehouse.Client", "--skip-null")
	require.NoError(t, err)
	assert.Contains(t, out, "[copy_into|skip_null]")

	_, err = run(t, "plan", "store.User")
	assert.Error(t, err)
}

func TestPlanCommand_Unrepresentable(t *testing.T) {
	out, err := run(t, "plan", "store.Order", "warehouse.Order", "--unsafe")
	require.NoError(t, err)
	assert.Regexp(t, `Items\s+unsafe_copy`, out)
	assert.Contains(t, out, "error: [store.Order -> warehouse.Order] Items: [unrepresentable]")

	_, err = run(t, "plan", "store.Order", "warehouse.Order", "--unsafe", "--strict")
	assert.ErrorContains(t, err, "[]store.OrderItem cannot be stored into []warehouse.Item")

	_, err = run(t, "plan", "store.User", "warehouse.Client", "--unsafe", "--strict")
	assert.NoError(t, err)
}

func TestConfigAndProfile(t *testing.T) {
	dir := t.TempDir()

	profilePath := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
mappings:
  - source: store.User
    target: warehouse.Client
    ignore: [Email]
`), 0o644))

	configPath := filepath.Join(dir, "fieldmapper.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("defaults:\n  unsafe: true\nprofile: "+profilePath+"\n"), 0o644))

	out, err := run(t, "--config", configPath, "plan", "store.User", "warehouse.Client")
	require.NoError(t, err)

	assert.Contains(t, out, "[ignore_type_conflicts]")
	assert.Regexp(t, `Role\s+unsafe_copy`, out)
	assert.Regexp(t, `Email\s+skip: ignored`, out)

	t.Setenv("FIELDMAPPER_DEFAULTS_COERCE", "true")

	out, err = run(t, "plan", "store.Reading", "warehouse.Gauge")
	require.NoError(t, err)
	assert.Regexp(t, `Value\s+nullable_coerce:unwrap`, out)

	_, err = run(t, "--config", filepath.Join(dir, "missing.yaml"), "types")
	assert.Error(t, err)
}
