// Package typedconfig decodes raw provider configurations into typed, provider-specific structures.
package typedconfig

import (
	"github.com/iancoleman/strcase"
	"github.com/keboola/go-client/pkg/keboola"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/utils"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

const (
	attributeTag = "mapstructure"
	pairNameKey  = "name"
	pairValueKey = "value"
)

// Configuration is a typed view of a raw provider configuration.
// It is immutable, a changed raw configuration must be decoded again.
type Configuration interface {
	ProviderID() keboola.ComponentID
	Family() Family
	// Attribute returns the value of the provider-specific attribute.
	// Found is false if the attribute is not defined for the provider or the value is not set.
	Attribute(name string) (value any, found bool)
	// Values returns normalized raw values, keys are in lowerCamel case.
	Values() *orderedmap.OrderedMap
	// Raw returns the raw configuration as it was decoded.
	Raw() any
}

type base struct {
	provider keboola.ComponentID
	family   Family
	raw      any
	values   *orderedmap.OrderedMap
}

// factories is the dispatch table from a family to its typed shape.
var factories = map[Family]func(b base) Configuration{ // nolint: gochecknoglobals
	FamilySnowflake: func(b base) Configuration { return &Snowflake{base: b} },
	FamilyBigQuery:  func(b base) Configuration { return &BigQuery{base: b} },
	FamilySQL:       func(b base) Configuration { return &SQLDatabase{base: b} },
	FamilyAthena:    func(b base) Configuration { return &Athena{base: b} },
}

// New decodes the raw configuration of the provider.
// The raw value can be a list of name/value pairs, an object or nil.
func New(provider keboola.ComponentID, raw any) (Configuration, error) {
	values, err := normalize(raw)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `invalid configuration of provider "%s"`, provider)
	}

	b := base{provider: provider, family: FamilyOf(provider), raw: utils.CloneValue(raw), values: values}
	factory, found := factories[b.family]
	if !found {
		return &Generic{base: b}, nil
	}

	cfg := factory(b)
	if err := decode(values, cfg); err != nil {
		return nil, errors.PrefixErrorf(err, `invalid configuration of provider "%s"`, provider)
	}
	return cfg, nil
}

func (b *base) ProviderID() keboola.ComponentID {
	return b.provider
}

func (b *base) Family() Family {
	return b.family
}

func (b *base) Values() *orderedmap.OrderedMap {
	return b.values.Clone()
}

func (b *base) Raw() any {
	return utils.CloneValue(b.raw)
}

func structAttribute(cfg Configuration, name string) (any, bool) {
	return utils.GetFieldByTagName(attributeTag, name, cfg)
}

func isEmpty(value any) bool {
	return utils.IsEmptyValue(value)
}

func decode(values *orderedmap.OrderedMap, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          attributeTag,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(values.ToMap())
}

// normalize converts the raw configuration to an ordered map with lowerCamel keys.
func normalize(raw any) (*orderedmap.OrderedMap, error) {
	out := orderedmap.New()
	if raw == nil {
		return out, nil
	}

	if m, ok := utils.AsOrderedMap(raw); ok {
		for _, key := range m.Keys() {
			out.Set(strcase.ToLowerCamel(key), m.GetOrNil(key))
		}
		return out, nil
	}

	items, ok := utils.AsSlice(raw)
	if !ok {
		return nil, errors.Errorf(`expected an object or a list of name/value pairs, found "%T"`, raw)
	}

	errs := errors.NewMultiError()
	for i, item := range items {
		pair, ok := utils.AsOrderedMap(item)
		if !ok {
			errs.Append(errors.Errorf(`item [%d]: expected an object, found "%T"`, i, item))
			continue
		}

		name := cast.ToString(pair.GetOrNil(pairNameKey))
		if name == "" {
			errs.Append(errors.Errorf(`item [%d]: missing "%s" key`, i, pairNameKey))
			continue
		}

		out.Set(strcase.ToLowerCamel(name), pair.GetOrNil(pairValueKey))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
