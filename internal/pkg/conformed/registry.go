package conformed

import (
	"context"
	"sort"

	"github.com/keboola/go-client/pkg/keboola"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/typedconfig"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
	"github.com/keboola/kbc-conform/internal/pkg/validator"
)

var ErrRegistryFrozen = errors.New("registry is frozen, no property can be registered") // nolint: gochecknoglobals

// AttributeReader reads a provider-specific attribute, see typedconfig.Configuration.
type AttributeReader interface {
	Attribute(name string) (value any, found bool)
}

// Registry of the conformed properties.
//
// Properties are registered once at startup, then the registry is frozen.
// Registration is not synchronized, all Register calls must complete before the registry is shared.
// Read methods are safe for concurrent use.
type Registry struct {
	properties map[string]Property
	frozen     bool
	validator  *validator.Validator
}

func NewRegistry() *Registry {
	return &Registry{properties: make(map[string]Property), validator: validator.New()}
}

// Register inserts the property. The name must be unique and each provider can be mapped only once.
func (r *Registry) Register(p Property) error {
	if r.frozen {
		return ErrRegistryFrozen
	}

	if err := r.validate(p); err != nil {
		return errors.PrefixErrorf(err, `property "%s" is invalid`, p.Name)
	}

	if _, found := r.properties[p.Name]; found {
		return &DuplicatePropertyError{Name: p.Name}
	}

	r.properties[p.Name] = p.clone()
	return nil
}

// MustRegister registers all properties, it panics on the first error.
func (r *Registry) MustRegister(properties ...Property) {
	for _, p := range properties {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
}

// Freeze forbids further registration.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) IsFrozen() bool {
	return r.frozen
}

func (r *Registry) Len() int {
	return len(r.properties)
}

func (r *Registry) Get(name string) (Property, bool) {
	p, found := r.properties[name]
	if !found {
		return Property{}, false
	}
	return p.clone(), true
}

// Properties returns all properties sorted by name.
func (r *Registry) Properties() []Property {
	out := make([]Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, p.clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Providers returns providers mapped by the property, nil if the property is unknown.
func (r *Registry) Providers(name string) []keboola.ComponentID {
	p, found := r.properties[name]
	if !found {
		return nil
	}
	return p.Providers()
}

// SupportedBy returns sorted names of the properties supported by the provider.
func (r *Registry) SupportedBy(provider keboola.ComponentID) []string {
	var out []string
	for name, p := range r.properties {
		if _, found := p.Attribute(provider); found {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Resolve returns the provider-specific attribute name of the property.
// Found is false if the property is unknown or the provider does not support it, it is not an error.
func (r *Registry) Resolve(name string, provider keboola.ComponentID) (attribute string, found bool) {
	p, found := r.properties[name]
	if !found {
		return "", false
	}
	return p.Attribute(provider)
}

// Read resolves the attribute name and reads it from the configuration.
// Found is false if the provider does not support the property or the value is not set.
func (r *Registry) Read(name string, provider keboola.ComponentID, cfg AttributeReader) (value any, found bool) {
	attribute, found := r.Resolve(name, provider)
	if !found || cfg == nil {
		return nil, false
	}
	return cfg.Attribute(attribute)
}

// ReadFrom reads the property from the typed configuration, the provider is taken from the configuration.
func (r *Registry) ReadFrom(name string, cfg typedconfig.Configuration) (value any, found bool) {
	if cfg == nil {
		return nil, false
	}
	return r.Read(name, cfg.ProviderID(), cfg)
}

// ReadString reads the property converted to a string.
// Found is false also if the value cannot be converted, eg. it is an object.
func (r *Registry) ReadString(name string, cfg typedconfig.Configuration) (string, bool) {
	value, found := r.ReadFrom(name, cfg)
	if !found {
		return "", false
	}
	str, err := cast.ToStringE(value)
	if err != nil {
		return "", false
	}
	return str, true
}

func (r *Registry) validate(p Property) error {
	errs := errors.NewMultiError()
	if err := r.validator.Validate(context.Background(), p); err != nil {
		errs.Append(err)
	}

	seen := make(map[keboola.ComponentID]bool)
	for _, m := range p.Mappings {
		if m.Provider == "" {
			continue
		}
		if seen[m.Provider] {
			errs.Append(errors.Errorf(`provider "%s" is mapped more than once`, m.Provider))
		}
		seen[m.Provider] = true
	}

	return errs.ErrorOrNil()
}
