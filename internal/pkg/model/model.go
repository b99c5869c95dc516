// Package model contains entities which own schedules, typed configurations and trigger settings.
package model

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/keboola/kbc-conform/internal/pkg/utils"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
	"github.com/keboola/kbc-conform/internal/pkg/validator"
)

const (
	KindStream   = "stream"
	KindDataflow = "dataflow"
)

// nolint: gochecknoglobals
var entityValidator = validator.New()

func rawObject(kind string, raw any) (*orderedmap.OrderedMap, error) {
	values, ok := utils.AsOrderedMap(raw)
	if !ok {
		return nil, errors.Errorf(`invalid %s: expected an object, found "%T"`, kind, raw)
	}
	return values.Clone(), nil
}

func stringValue(values *orderedmap.OrderedMap, key string) string {
	v, found := values.Get(key)
	if !found || v == nil {
		return ""
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(str)
}
