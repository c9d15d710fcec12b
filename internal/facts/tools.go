package facts

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/hostprep/hostprep/internal/ports"
)

// MinGitVersion is the oldest git the clone steps are written against
// (shallow clones with --depth and --branch).
const MinGitVersion = "v2.0.0"

var gitVersionRe = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)

// GitVersion returns the installed git version as a semver string
// ("v2.39.2"), or "" if git is not available.
func GitVersion(ctx context.Context, runner ports.CommandRunner) string {
	result, err := runner.Run(ctx, "git", "--version")
	if err != nil || !result.Success() {
		return ""
	}
	return ParseGitVersion(result.Stdout)
}

// ParseGitVersion extracts a semver string from `git --version` output.
// Returns "" if the output is unrecognized.
func ParseGitVersion(output string) string {
	m := gitVersionRe.FindStringSubmatch(strings.TrimSpace(output))
	if m == nil {
		return ""
	}
	v := "v" + m[1]
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// GitUsable reports whether the installed git meets the minimum version.
// A missing git is not usable.
func GitUsable(ctx context.Context, runner ports.CommandRunner) bool {
	v := GitVersion(ctx, runner)
	if v == "" {
		return false
	}
	return semver.Compare(v, MinGitVersion) >= 0
}
