package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "git", wantErr: nil},
		{name: "with hyphen", input: "fd-find", wantErr: nil},
		{name: "with dot", input: "python3.11", wantErr: nil},
		{name: "with plus", input: "g++", wantErr: nil},
		{name: "numeric start", input: "7zip", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "with semicolon", input: "git;rm -rf", wantErr: ErrInvalidPackageName},
		{name: "with pipe", input: "git|cat", wantErr: ErrInvalidPackageName},
		{name: "with dollar", input: "git$PATH", wantErr: ErrInvalidPackageName},
		{name: "with backtick", input: "git`whoami`", wantErr: ErrInvalidPackageName},
		{name: "with newline", input: "git\nrm", wantErr: ErrInvalidPackageName},
		{name: "with space", input: "git repo", wantErr: ErrInvalidPackageName},
		{name: "starts with hyphen", input: "-git", wantErr: ErrInvalidPackageName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateServiceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "bare unit", input: "fail2ban", wantErr: nil},
		{name: "with suffix", input: "tailscaled.service", wantErr: nil},
		{name: "template instance", input: "getty@tty1", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "with semicolon", input: "sshd;reboot", wantErr: ErrInvalidServiceName},
		{name: "with space", input: "ssh d", wantErr: ErrInvalidServiceName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceName(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUserName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple", input: "deploy", wantErr: nil},
		{name: "with underscore", input: "svc_account", wantErr: nil},
		{name: "trailing dollar", input: "machine$", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "uppercase", input: "Deploy", wantErr: ErrInvalidUserName},
		{name: "numeric start", input: "1deploy", wantErr: ErrInvalidUserName},
		{name: "too long", input: strings.Repeat("a", 33), wantErr: ErrInvalidUserName},
		{name: "with colon", input: "deploy:x", wantErr: ErrInvalidUserName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserName(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGroupName(t *testing.T) {
	require.NoError(t, ValidateGroupName("docker"))
	assert.ErrorIs(t, ValidateGroupName(""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateGroupName("bad group"), ErrInvalidGroupName)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "https clone", input: "https://github.com/ohmyzsh/ohmyzsh.git", wantErr: nil},
		{name: "http download", input: "http://example.com/file.conf", wantErr: nil},
		{name: "with query", input: "https://example.com/a?b=c", wantErr: nil},

		{name: "empty", input: "", wantErr: ErrEmptyInput},
		{name: "not a url", input: "github.com/x/y", wantErr: ErrInvalidURL},
		{name: "file scheme", input: "file:///etc/passwd", wantErr: ErrInvalidURL},
		{name: "with backtick", input: "https://example.com/`id`", wantErr: ErrInvalidURL},
		{name: "with space", input: "https://example.com/a b", wantErr: ErrInvalidURL},
		{name: "with semicolon shellism", input: "https://example.com/;reboot", wantErr: ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShellPath(t *testing.T) {
	require.NoError(t, ValidateShellPath("/usr/bin/zsh"))
	require.NoError(t, ValidateShellPath("/bin/bash"))
	assert.ErrorIs(t, ValidateShellPath(""), ErrEmptyInput)
	assert.ErrorIs(t, ValidateShellPath("zsh"), ErrInvalidShellPath)
	assert.ErrorIs(t, ValidateShellPath("/usr/bin/../bin/zsh"), ErrInvalidShellPath)
	assert.ErrorIs(t, ValidateShellPath("/bin/sh; rm"), ErrInvalidShellPath)
}
