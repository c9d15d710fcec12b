// Package facts probes live host state: OS family, installed packages,
// existing paths, active services, login shells, and group memberships.
// Probes are queried fresh for every check and never cached across a run.
package facts

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/hostprep/hostprep/internal/ports"
)

// Family identifies a package-manager lineage. Every package name mapping
// downstream keys off it.
type Family string

const (
	// FamilyDebian covers Debian, Ubuntu, and derivatives (apt/dpkg).
	FamilyDebian Family = "debian"
	// FamilyFedora covers Fedora, RHEL, CentOS, and derivatives (dnf/rpm).
	FamilyFedora Family = "fedora"
	// FamilyArch covers Arch and derivatives (pacman).
	FamilyArch Family = "arch"
	// FamilySUSE covers openSUSE and SLE (zypper/rpm).
	FamilySUSE Family = "suse"
)

// OSReleasePath is the standard location of the system release descriptor.
const OSReleasePath = "/etc/os-release"

// UnsupportedPlatformError indicates the host's OS identifier is not one the
// engine knows how to provision. This is fatal: no plan is built on top of an
// unknown package manager.
type UnsupportedPlatformError struct {
	ID     string
	IDLike string
}

func (e *UnsupportedPlatformError) Error() string {
	if e.IDLike != "" {
		return fmt.Sprintf("unsupported platform: os-release ID=%q ID_LIKE=%q", e.ID, e.IDLike)
	}
	return fmt.Sprintf("unsupported platform: os-release ID=%q", e.ID)
}

// familyByID maps os-release identifiers to families.
var familyByID = map[string]Family{
	"debian":              FamilyDebian,
	"ubuntu":              FamilyDebian,
	"raspbian":            FamilyDebian,
	"linuxmint":           FamilyDebian,
	"pop":                 FamilyDebian,
	"fedora":              FamilyFedora,
	"rhel":                FamilyFedora,
	"centos":              FamilyFedora,
	"rocky":               FamilyFedora,
	"almalinux":           FamilyFedora,
	"arch":                FamilyArch,
	"manjaro":             FamilyArch,
	"endeavouros":         FamilyArch,
	"opensuse":            FamilySUSE,
	"opensuse-leap":       FamilySUSE,
	"opensuse-tumbleweed": FamilySUSE,
	"sles":                FamilySUSE,
}

// DetectFamily parses the system release descriptor and returns the OS
// family. The ID field is consulted first, then each entry of ID_LIKE.
// An unrecognized identifier is a fatal configuration error.
func DetectFamily(fs ports.FileSystem) (Family, error) {
	data, err := fs.ReadFile(OSReleasePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", OSReleasePath, err)
	}
	return ParseFamily(data)
}

// ParseFamily resolves the OS family from os-release file contents.
func ParseFamily(osRelease []byte) (Family, error) {
	cfg, err := ini.Load(osRelease)
	if err != nil {
		return "", fmt.Errorf("parse os-release: %w", err)
	}

	section := cfg.Section("")
	id := strings.ToLower(section.Key("ID").String())
	idLike := strings.ToLower(section.Key("ID_LIKE").String())

	if family, ok := familyByID[id]; ok {
		return family, nil
	}

	// ID_LIKE lists space-separated parent distributions, nearest first.
	for _, like := range strings.Fields(idLike) {
		if family, ok := familyByID[like]; ok {
			return family, nil
		}
	}

	return "", &UnsupportedPlatformError{ID: id, IDLike: idLike}
}
