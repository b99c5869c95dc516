package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/afero"

	"github.com/keboola/kbc-conform/internal/pkg/encoding/json"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

const noValue = "-"

// readJSONFile reads a JSON object from the file, a relative path is resolved from the working directory.
func (root *RootCommand) readJSONFile(path string) (*orderedmap.OrderedMap, error) {
	path = root.path(path)
	content, err := afero.ReadFile(root.fs, path)
	if err != nil {
		return nil, errors.Errorf(`cannot read file "%s": %w`, path, err)
	}
	values, err := json.DecodeMap(content)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `file "%s" is not a valid JSON object`, path)
	}
	return values, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Encode(v, true)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func valueOrDash(v string) string {
	if v == "" {
		return noValue
	}
	return v
}
