package step

import "github.com/hostprep/hostprep/internal/facts"

// Provider compiles a section of the host manifest into executable steps.
// Each provider handles one resource type (packages, repos, services, ...).
type Provider interface {
	// Name returns the provider's identifier (e.g., "pkg", "service").
	Name() string

	// Compile transforms manifest configuration into a list of steps.
	// Compilation is pure: it never touches the live system. Cross-provider
	// ordering is expressed through Step.DependsOn().
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides manifest data and host metadata to providers
// during compilation.
type CompileContext struct {
	manifest map[string]interface{}
	family   facts.Family
}

// NewCompileContext creates a new CompileContext with the given manifest.
func NewCompileContext(manifest map[string]interface{}) CompileContext {
	return CompileContext{
		manifest: manifest,
	}
}

// Manifest returns the full manifest.
func (c CompileContext) Manifest() map[string]interface{} {
	return c.manifest
}

// GetSection returns a specific section of the manifest by key.
// Returns nil if the section doesn't exist or isn't a map.
func (c CompileContext) GetSection(key string) map[string]interface{} {
	if c.manifest == nil {
		return nil
	}
	section, ok := c.manifest[key]
	if !ok {
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return nil
	}
	return sectionMap
}

// Family returns the detected OS family the plan is built for.
func (c CompileContext) Family() facts.Family {
	return c.family
}

// WithFamily returns a new CompileContext with the OS family set.
func (c CompileContext) WithFamily(family facts.Family) CompileContext {
	return CompileContext{
		manifest: c.manifest,
		family:   family,
	}
}
