package facts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostprep/hostprep/internal/facts"
	"github.com/hostprep/hostprep/internal/testutil/mocks"
)

func TestParseFamily_KnownIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		osRelease string
		want      facts.Family
	}{
		{
			name:      "ubuntu",
			osRelease: "ID=ubuntu\nID_LIKE=debian\nVERSION_ID=\"24.04\"\n",
			want:      facts.FamilyDebian,
		},
		{
			name:      "debian",
			osRelease: "ID=debian\n",
			want:      facts.FamilyDebian,
		},
		{
			name:      "fedora",
			osRelease: "ID=fedora\nVERSION_ID=41\n",
			want:      facts.FamilyFedora,
		},
		{
			name:      "arch",
			osRelease: "ID=arch\n",
			want:      facts.FamilyArch,
		},
		{
			name:      "opensuse leap",
			osRelease: "ID=\"opensuse-leap\"\nID_LIKE=\"suse opensuse\"\n",
			want:      facts.FamilySUSE,
		},
		{
			name:      "quoted uppercase id",
			osRelease: "ID=\"Ubuntu\"\n",
			want:      facts.FamilyDebian,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			family, err := facts.ParseFamily([]byte(tt.osRelease))
			require.NoError(t, err)
			assert.Equal(t, tt.want, family)
		})
	}
}

func TestParseFamily_FallsBackToIDLike(t *testing.T) {
	t.Parallel()

	family, err := facts.ParseFamily([]byte("ID=neon\nID_LIKE=\"ubuntu debian\"\n"))

	require.NoError(t, err)
	assert.Equal(t, facts.FamilyDebian, family)
}

func TestParseFamily_UnknownIsFatal(t *testing.T) {
	t.Parallel()

	_, err := facts.ParseFamily([]byte("ID=gentoo\n"))

	var unsupported *facts.UnsupportedPlatformError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "gentoo", unsupported.ID)
}

func TestDetectFamily_ReadsOSRelease(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.AddFile(facts.OSReleasePath, "ID=fedora\n")

	family, err := facts.DetectFamily(fs)

	require.NoError(t, err)
	assert.Equal(t, facts.FamilyFedora, family)
}

func TestDetectFamily_MissingOSRelease(t *testing.T) {
	t.Parallel()

	_, err := facts.DetectFamily(mocks.NewFileSystem())

	assert.Error(t, err)
}
