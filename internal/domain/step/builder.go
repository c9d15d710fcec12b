package step

import "fmt"

// Builder turns a host manifest into a validated step Graph by invoking
// registered providers in registration order.
type Builder struct {
	providers []Provider
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		providers: make([]Provider, 0),
	}
}

// RegisterProvider adds a provider. Providers are compiled in registration
// order, which fixes the base declaration order of the resulting steps.
func (b *Builder) RegisterProvider(provider Provider) {
	b.providers = append(b.providers, provider)
}

// Providers returns all registered providers.
func (b *Builder) Providers() []Provider {
	return b.providers
}

// Build compiles the manifest into a validated Graph. Returns an error if a
// provider fails, a step ID is duplicated, a dependency is missing, or the
// dependencies contain a cycle.
func (b *Builder) Build(ctx CompileContext) (*Graph, error) {
	graph := NewGraph()

	for _, provider := range b.providers {
		steps, err := provider.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", provider.Name(), err)
		}

		for _, s := range steps {
			if err := graph.Add(s); err != nil {
				return nil, fmt.Errorf("provider %q, step %q: %w",
					provider.Name(), s.ID().String(), err)
			}
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}

	if _, err := graph.Sorted(); err != nil {
		return nil, err
	}

	return graph, nil
}
