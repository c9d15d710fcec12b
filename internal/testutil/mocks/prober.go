package mocks

import (
	"context"
	"sync"

	"github.com/hostprep/hostprep/internal/facts"
)

// Prober is a test double for facts.Prober backed by plain maps.
type Prober struct {
	mu       sync.RWMutex
	packages map[string]bool
	paths    map[string]bool
	services map[string]bool
	shells   map[string]string
	users    map[string]bool
	groups   map[string]map[string]bool
}

// NewProber creates an empty Prober mock. Every query answers "not present"
// until state is added.
func NewProber() *Prober {
	return &Prober{
		packages: make(map[string]bool),
		paths:    make(map[string]bool),
		services: make(map[string]bool),
		shells:   make(map[string]string),
		users:    make(map[string]bool),
		groups:   make(map[string]map[string]bool),
	}
}

// AddPackage marks a package as installed.
func (m *Prober) AddPackage(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packages[name] = true
}

// AddPath marks a path as existing.
func (m *Prober) AddPath(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paths[path] = true
}

// AddService marks a systemd unit as active.
func (m *Prober) AddService(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[name] = true
}

// SetShell records a user's login shell.
func (m *Prober) SetShell(user, shell string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shells[user] = shell
}

// AddUser marks a user account as existing.
func (m *Prober) AddUser(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[name] = true
}

// AddGroupMember records a user's group membership.
func (m *Prober) AddGroupMember(user, group string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.groups[user] == nil {
		m.groups[user] = make(map[string]bool)
	}
	m.groups[user][group] = true
}

// PackageInstalled reports registered package state.
func (m *Prober) PackageInstalled(_ context.Context, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.packages[name]
}

// PathExists reports registered path state.
func (m *Prober) PathExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths[path]
}

// ServiceActive reports registered unit state.
func (m *Prober) ServiceActive(_ context.Context, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.services[name]
}

// CurrentShell reports a registered login shell.
func (m *Prober) CurrentShell(_ context.Context, user string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shells[user]
}

// UserExists reports registered account state.
func (m *Prober) UserExists(_ context.Context, user string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[user]
}

// GroupMember reports registered membership state.
func (m *Prober) GroupMember(_ context.Context, user, group string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.groups[user][group]
}

var _ facts.Prober = (*Prober)(nil)
