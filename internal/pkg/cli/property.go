package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/keboola/kbc-conform/internal/pkg/model"
	"github.com/keboola/kbc-conform/internal/pkg/utils/errors"
)

type propertyOutput struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Mappings    map[string]string `json:"mappings"`
}

type propertyValueOutput struct {
	Property  string `json:"property"`
	Provider  string `json:"provider"`
	Attribute string `json:"attribute,omitempty"`
	Found     bool   `json:"found"`
	Value     any    `json:"value,omitempty"`
}

func PropertyCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "property",
		Short: "Conformed properties",
		Long: `Conformed properties.

A conformed property, eg. "warehouse", is a provider-agnostic name
of a configuration attribute with a provider-specific name.`,
	}
	cmd.AddCommand(propertyListCommand(root), propertyReadCommand(root))
	return cmd
}

func propertyListCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conformed properties and their provider mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			properties := root.registry.Properties()

			if root.Options.IsJSON() {
				out := make([]propertyOutput, 0, len(properties))
				for _, p := range properties {
					item := propertyOutput{Name: p.Name, Description: p.Description, Mappings: make(map[string]string)}
					for _, m := range p.Mappings {
						item.Mappings[m.Provider.String()] = m.Attribute
					}
					out = append(out, item)
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Property", "Provider", "Attribute"})
			for _, p := range properties {
				for i, m := range p.Mappings {
					name := ""
					if i == 0 {
						name = p.Name
					}
					t.AppendRow(table.Row{name, m.Provider.String(), m.Attribute})
				}
				t.AppendSeparator()
			}
			t.Render()
			return nil
		},
	}
}

func propertyReadCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "read <property> <stream-file>",
		Short: "Read a conformed property from a stream payload",
		Long: `Read a conformed property from a stream payload.

The file contains a JSON object with the "id", "componentId" and "configuration" keys.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if _, found := root.registry.Get(name); !found {
				return errors.Errorf(`property "%s" not found, use the "property list" command to list all properties`, name)
			}

			raw, err := root.readJSONFile(args[1])
			if err != nil {
				return err
			}
			stream, err := model.NewStream(cmd.Context(), raw, root.registry)
			if err != nil {
				return err
			}

			out := propertyValueOutput{Property: name, Provider: stream.ComponentID.String()}
			out.Attribute, _ = root.registry.Resolve(name, stream.ComponentID)
			out.Value, out.Found = stream.Property(name)

			if root.Options.IsJSON() {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			switch {
			case out.Attribute == "":
				root.Logger.Infof(cmd.Context(), `Property "%s" is not supported by the provider "%s".`, name, out.Provider)
			case !out.Found:
				root.Logger.Infof(cmd.Context(), `Property "%s" (attribute "%s") is not set.`, name, out.Attribute)
			default:
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cast.ToString(out.Value))
			}
			return err
		},
	}
}
