// Package validation provides input validation to prevent command injection
// and related input-based attacks in step arguments that reach external
// commands.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidServiceName = errors.New("invalid service name")
	ErrInvalidUserName    = errors.New("invalid user name")
	ErrInvalidGroupName   = errors.New("invalid group name")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidShellPath   = errors.New("invalid shell path")
)

// Compiled regex patterns for validation.
var (
	// packageNameRegex matches valid package names.
	// Examples: "git", "fd-find", "python3.11", "g++"
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// serviceNameRegex matches systemd unit names without a unit suffix or
	// with one of the common suffixes.
	// Examples: "fail2ban", "firewalld", "tailscaled.service"
	serviceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9@._-]*$`)

	// userNameRegex matches POSIX portable user and group names.
	userNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)

	// urlRegex matches HTTP/HTTPS URLs used for clones and file downloads.
	urlRegex = regexp.MustCompile(`^https?://[a-zA-Z0-9][a-zA-Z0-9._~:/?#@!$&'()*+,;=%-]*$`)

	// shellPathRegex matches absolute shell paths.
	// Examples: "/usr/bin/zsh", "/bin/bash"
	shellPathRegex = regexp.MustCompile(`^/[a-zA-Z0-9/._-]+$`)
)

// ValidatePackageName checks that a package name is safe to pass to a
// package manager.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}

// ValidateServiceName checks that a service name is safe to pass to the
// service manager.
func ValidateServiceName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !serviceNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidServiceName, name)
	}
	return nil
}

// ValidateUserName checks that a user name is a POSIX portable name.
func ValidateUserName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 32 || !userNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidUserName, name)
	}
	return nil
}

// ValidateGroupName checks that a group name is a POSIX portable name.
func ValidateGroupName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if len(name) > 32 || !userNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidGroupName, name)
	}
	return nil
}

// ValidateURL checks that a URL is a plausible HTTP(S) URL with no shell
// metacharacters.
func ValidateURL(url string) error {
	if url == "" {
		return ErrEmptyInput
	}
	if strings.ContainsAny(url, " \t\n`$;|&<>\"'\\") || !urlRegex.MatchString(url) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return nil
}

// ValidateShellPath checks that a login shell path is absolute and clean.
func ValidateShellPath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}
	if !shellPathRegex.MatchString(path) || strings.Contains(path, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidShellPath, path)
	}
	return nil
}
