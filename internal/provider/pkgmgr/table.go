package pkgmgr

import "github.com/hostprep/hostprep/internal/facts"

// nameTable maps logical package names to per-family package names.
// Package names diverge across package managers; the mapping is an explicit
// table rather than anything inferred. Logical names without an entry pass
// through unchanged.
var nameTable = map[string]map[facts.Family]string{
	"fd": {
		facts.FamilyDebian: "fd-find",
		facts.FamilyFedora: "fd-find",
		facts.FamilyArch:   "fd",
		facts.FamilySUSE:   "fd",
	},
	"openssh": {
		facts.FamilyDebian: "openssh-server",
		facts.FamilyFedora: "openssh-server",
		facts.FamilyArch:   "openssh",
		facts.FamilySUSE:   "openssh",
	},
	"pip": {
		facts.FamilyDebian: "python3-pip",
		facts.FamilyFedora: "python3-pip",
		facts.FamilyArch:   "python-pip",
		facts.FamilySUSE:   "python3-pip",
	},
	"locate": {
		facts.FamilyDebian: "plocate",
		facts.FamilyFedora: "mlocate",
		facts.FamilyArch:   "plocate",
		facts.FamilySUSE:   "mlocate",
	},
	"build-tools": {
		facts.FamilyDebian: "build-essential",
		facts.FamilyFedora: "make",
		facts.FamilyArch:   "base-devel",
		facts.FamilySUSE:   "patterns-devel-base-devel_basis",
	},
}

// Resolve returns the family-specific package name for a logical name.
func Resolve(logical string, family facts.Family) string {
	if perFamily, ok := nameTable[logical]; ok {
		if name, ok := perFamily[family]; ok {
			return name
		}
	}
	return logical
}

// installCommand returns the package-manager install invocation for a
// family. The command is non-interactive; the engine only interprets its
// exit code.
func installCommand(family facts.Family, pkg string) (string, []string) {
	switch family {
	case facts.FamilyDebian:
		return "sudo", []string{"apt-get", "install", "-y", pkg}
	case facts.FamilyFedora:
		return "sudo", []string{"dnf", "install", "-y", pkg}
	case facts.FamilyArch:
		return "sudo", []string{"pacman", "-S", "--noconfirm", "--needed", pkg}
	case facts.FamilySUSE:
		return "sudo", []string{"zypper", "--non-interactive", "install", pkg}
	default:
		return "", nil
	}
}
