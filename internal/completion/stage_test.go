package completion

import (
	"testing"

	"github.com/NikitaCOEUR/devlog/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		trailing bool
		want     Stage
	}{
		{name: "no tokens", tokens: nil, want: StageEmpty},
		{name: "first word", tokens: []string{"fil"}, want: StageCommand},
		{name: "first word complete", tokens: []string{"filter"}, trailing: true, want: StageContextValue},
		{name: "flag", tokens: []string{"filter", "--e"}, want: StageFlag},
		{name: "single dash", tokens: []string{"list", "-"}, want: StageFlag},
		{name: "value", tokens: []string{"filter", "su"}, want: StageContextValue},
		{name: "after flag", tokens: []string{"filter", "--event"}, trailing: true, want: StageContextValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.tokens, tt.trailing))
		})
	}
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "empty", StageEmpty.String())
	assert.Equal(t, "command", StageCommand.String())
	assert.Equal(t, "flag", StageFlag.String())
	assert.Equal(t, "context-value", StageContextValue.String())
	assert.Equal(t, "none", StageNone.String())
}

func TestNewRequest(t *testing.T) {
	reg := registry.Default()

	req, err := NewRequest("FILTER --event lo", reg)
	require.NoError(t, err)
	assert.Equal(t, StageContextValue, req.Stage)
	assert.Equal(t, "filter", req.Command.Name)
	assert.Equal(t, "lo", req.Current)
	assert.Equal(t, []string{"FILTER", "--event"}, req.Prior)
	assert.True(t, req.HasPrior("--event"))

	req, err = NewRequest("where --event ", reg)
	require.NoError(t, err)
	assert.Equal(t, "filter", req.Command.Name, "aliases resolve")
	assert.Equal(t, "", req.Current)
	assert.Equal(t, []string{"where", "--event"}, req.Prior)

	req, err = NewRequest("bogus arg", reg)
	require.NoError(t, err)
	assert.Equal(t, StageNone, req.Stage)

	req, err = NewRequest("fi", reg)
	require.NoError(t, err)
	assert.Equal(t, StageCommand, req.Stage)
	assert.Empty(t, req.Prior)
	assert.Equal(t, "", req.Command.Name)

	_, err = NewRequest(`add "x`, reg)
	assert.Error(t, err)
}

func TestRequest_HasPrior_Literal(t *testing.T) {
	req := &Request{Prior: []string{"filter", "--e"}}
	assert.False(t, req.HasPrior("--event"))

	req = &Request{Prior: []string{"list", "-s"}}
	assert.True(t, req.HasPrior("--sort", "-s"))
	assert.False(t, req.HasPrior("--sort"))
}
