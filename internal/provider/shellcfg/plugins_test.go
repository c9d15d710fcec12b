package shellcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPlugin(t *testing.T) {
	t.Parallel()

	content := "plugins=(git docker kubectl)\n"

	assert.True(t, containsPlugin(content, "git"))
	assert.True(t, containsPlugin(content, "kubectl"))
	assert.False(t, containsPlugin(content, "fzf"))
	assert.False(t, containsPlugin("plugins=()\n", "git"))
	assert.False(t, containsPlugin("# no plugins line\n", "git"))
}

func TestAddPlugin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		plugin  string
		want    string
	}{
		{
			name:    "appends to existing list",
			content: "plugins=(git docker)\n",
			plugin:  "fzf",
			want:    "plugins=(git docker fzf)\n",
		},
		{
			name:    "already present is unchanged",
			content: "plugins=(git docker)\n",
			plugin:  "git",
			want:    "plugins=(git docker)\n",
		},
		{
			name:    "empty list",
			content: "plugins=()\n",
			plugin:  "git",
			want:    "plugins=(git)\n",
		},
		{
			name:    "no plugins line appends one",
			content: "# some config\n",
			plugin:  "git",
			want:    "# some config\nplugins=(git)\n",
		},
		{
			name:    "surrounding lines preserved",
			content: "export ZSH=~/.oh-my-zsh\nplugins=(git)\nsource $ZSH/oh-my-zsh.sh\n",
			plugin:  "fzf",
			want:    "export ZSH=~/.oh-my-zsh\nplugins=(git fzf)\nsource $ZSH/oh-my-zsh.sh\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, addPlugin(tt.content, tt.plugin))
		})
	}
}
