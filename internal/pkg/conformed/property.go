// Package conformed maps provider-agnostic property names to provider-specific configuration attributes.
package conformed

import (
	"fmt"

	"github.com/keboola/go-client/pkg/keboola"
)

// Property is a semantic configuration value, eg. "warehouse", with different attribute names per provider.
type Property struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Mappings    []Mapping `json:"mappings" validate:"dive"`
}

// Mapping of the property to the provider-specific attribute name.
type Mapping struct {
	Provider  keboola.ComponentID `json:"provider" validate:"required"`
	Attribute string              `json:"attribute" validate:"required"`
}

// DuplicatePropertyError is returned when a property with the same name is already registered.
type DuplicatePropertyError struct {
	Name string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf(`property "%s" is already registered`, e.Name)
}

// Attribute returns the attribute name for the provider, found is false if the provider has no mapping.
func (p Property) Attribute(provider keboola.ComponentID) (attribute string, found bool) {
	for _, m := range p.Mappings {
		if m.Provider == provider {
			return m.Attribute, true
		}
	}
	return "", false
}

// Providers returns providers in the mapping order.
func (p Property) Providers() []keboola.ComponentID {
	out := make([]keboola.ComponentID, 0, len(p.Mappings))
	for _, m := range p.Mappings {
		out = append(out, m.Provider)
	}
	return out
}

func (p Property) String() string {
	return p.Name
}

func (p Property) clone() Property {
	p.Mappings = append([]Mapping(nil), p.Mappings...)
	return p
}
