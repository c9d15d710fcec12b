package facts

import (
	"context"
	"strings"

	"github.com/hostprep/hostprep/internal/ports"
)

// Prober queries current host state. Every query fails soft: if the
// underlying command errors, the answer is "not present". Absence of
// evidence matches the check-then-install pattern the engine implements.
type Prober interface {
	PackageInstalled(ctx context.Context, name string) bool
	PathExists(path string) bool
	ServiceActive(ctx context.Context, name string) bool
	CurrentShell(ctx context.Context, user string) string
	UserExists(ctx context.Context, user string) bool
	GroupMember(ctx context.Context, user, group string) bool
}

// SystemProber probes the live system through a command runner and
// filesystem.
type SystemProber struct {
	family Family
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewSystemProber creates a prober for the given OS family.
func NewSystemProber(family Family, runner ports.CommandRunner, fs ports.FileSystem) *SystemProber {
	return &SystemProber{
		family: family,
		runner: runner,
		fs:     fs,
	}
}

// Family returns the OS family the prober was built for.
func (p *SystemProber) Family() Family {
	return p.family
}

// PackageInstalled reports whether the named package is installed, using the
// family's package database query.
func (p *SystemProber) PackageInstalled(ctx context.Context, name string) bool {
	switch p.family {
	case FamilyDebian:
		result, err := p.runner.Run(ctx, "dpkg-query", "-W", "-f=${db:Status-Status}", name)
		if err != nil || !result.Success() {
			return false
		}
		return strings.TrimSpace(result.Stdout) == "installed"
	case FamilyFedora, FamilySUSE:
		result, err := p.runner.Run(ctx, "rpm", "-q", name)
		return err == nil && result.Success()
	case FamilyArch:
		result, err := p.runner.Run(ctx, "pacman", "-Q", name)
		return err == nil && result.Success()
	default:
		return false
	}
}

// PathExists reports whether a file or directory exists.
func (p *SystemProber) PathExists(path string) bool {
	return p.fs.Exists(ports.ExpandPath(path))
}

// ServiceActive reports whether a systemd unit is active.
func (p *SystemProber) ServiceActive(ctx context.Context, name string) bool {
	result, err := p.runner.Run(ctx, "systemctl", "is-active", "--quiet", name)
	return err == nil && result.Success()
}

// CurrentShell returns the login shell path for a user, or "" if it cannot
// be determined.
func (p *SystemProber) CurrentShell(ctx context.Context, user string) string {
	result, err := p.runner.Run(ctx, "getent", "passwd", user)
	if err != nil || !result.Success() {
		return ""
	}
	// getent passwd output: name:passwd:uid:gid:gecos:home:shell
	fields := strings.Split(strings.TrimSpace(result.Stdout), ":")
	if len(fields) < 7 {
		return ""
	}
	return fields[6]
}

// UserExists reports whether a local user account exists.
func (p *SystemProber) UserExists(ctx context.Context, user string) bool {
	result, err := p.runner.Run(ctx, "getent", "passwd", user)
	return err == nil && result.Success()
}

// GroupMember reports whether a user belongs to a group.
func (p *SystemProber) GroupMember(ctx context.Context, user, group string) bool {
	result, err := p.runner.Run(ctx, "id", "-nG", user)
	if err != nil || !result.Success() {
		return false
	}
	for _, g := range strings.Fields(result.Stdout) {
		if g == group {
			return true
		}
	}
	return false
}

var _ Prober = (*SystemProber)(nil)
