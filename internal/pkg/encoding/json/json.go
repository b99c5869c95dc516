// Package json is a thin wrapper around json-iterator with the standard library compatible configuration.
package json

import (
	"bytes"
	stdjson "encoding/json"

	jsoniter "github.com/json-iterator/go"
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary // nolint: gochecknoglobals

func Encode(v any, pretty bool) ([]byte, error) {
	data, err := api.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode JSON: "+err.Error())
	}

	// Custom marshalers, eg. *orderedmap.OrderedMap, are not reformatted by the encoder.
	var out bytes.Buffer
	if pretty {
		err = stdjson.Indent(&out, data, "", "  ")
		out.WriteByte('\n')
	} else {
		err = stdjson.Compact(&out, data)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot format JSON: "+err.Error())
	}
	return out.Bytes(), nil
}

func EncodeString(v any, pretty bool) (string, error) {
	data, err := Encode(v, pretty)
	return string(data), err
}

func MustEncodeString(v any, pretty bool) string {
	str, err := EncodeString(v, pretty)
	if err != nil {
		panic(err)
	}
	return str
}

func Decode(data []byte, target any) error {
	if err := api.Unmarshal(data, target); err != nil {
		return errors.Wrap(err, "cannot decode JSON: "+err.Error())
	}
	return nil
}

func DecodeString(data string, target any) error {
	return Decode([]byte(data), target)
}

// DecodeMap decodes a JSON object, the order of keys is preserved.
func DecodeMap(data []byte) (*orderedmap.OrderedMap, error) {
	out := orderedmap.New()
	if err := Decode(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
