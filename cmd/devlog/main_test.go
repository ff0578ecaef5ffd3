package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Commands(t *testing.T) {
	app := newApp()

	assert.Equal(t, "devlog", app.Name)
	for _, name := range []string{"complete", "status", "validate", "schema"} {
		assert.NotNil(t, app.Command(name), name)
	}
}

func TestNewApp_Schema(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "schema.json")

	err := newApp().Run(context.Background(), []string{"devlog", "schema", "-o", outputFile})
	require.NoError(t, err)

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"max_display"`)
}

func TestNewApp_ValidateInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("max_display: 0\n"), 0644))

	err := newApp().Run(context.Background(), []string{"devlog", "validate", configPath})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
