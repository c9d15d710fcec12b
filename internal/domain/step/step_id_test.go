package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "provider action resource", input: "pkg:install:fail2ban", wantErr: nil},
		{name: "unit with dot suffix", input: "svc:enable:tailscaled.service", wantErr: nil},
		{name: "slug with hyphens", input: "repo:clone:powerlevel10k", wantErr: nil},
		{name: "dotfile resource", input: "file:write:.p10k.zsh", wantErr: nil},
		{name: "dotdir resource", input: "file:write:.config-htop-htoprc", wantErr: nil},
		{name: "underscore start", input: "file:write:_netrc", wantErr: nil},
		{name: "surrounding whitespace trimmed", input: "  pkg:install:git  ", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyID},
		{name: "whitespace only", input: "   ", wantErr: ErrEmptyID},
		{name: "embedded space", input: "pkg:install:my package", wantErr: ErrInvalidID},
		{name: "empty segment", input: "pkg::git", wantErr: ErrInvalidID},
		{name: "trailing colon", input: "pkg:install:", wantErr: ErrInvalidID},
		{name: "hyphen start", input: "file:write:-flag", wantErr: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewID(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.False(t, id.IsZero())
		})
	}
}

func TestIDProvider(t *testing.T) {
	t.Parallel()

	id := MustNewID("file:write:.config-htop-htoprc")
	assert.Equal(t, "file", id.Provider())
	assert.Equal(t, "file:write:.config-htop-htoprc", id.String())
}

func TestMustNewIDPanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewID("not a valid id") })
}
