package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/keboola/kbc-conform/internal/pkg/model"
	"github.com/keboola/kbc-conform/internal/pkg/trigger"
)

type triggersOutput struct {
	Dataflow     string          `json:"dataflow"`
	HasSettings  bool            `json:"hasSettings"`
	HasSchedules bool            `json:"hasSchedules"`
	Triggers     []triggerOutput `json:"triggers"`
	Invalid      []invalidOutput `json:"invalid,omitempty"`
}

type triggerOutput struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Events     []eventOutput `json:"events"`
	Conditions []string      `json:"conditions,omitempty"`
}

type eventOutput struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type invalidOutput struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func TriggersCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "triggers <file>",
		Short: "List triggers of a dataflow payload",
		Long: `List triggers of a dataflow payload.

The file contains a JSON object with the "id", "name" and "triggerSettings" keys.
Invalid trigger, event and condition entries are skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := root.readJSONFile(args[0])
			if err != nil {
				return err
			}
			dataflow, err := model.NewDataflow(cmd.Context(), raw, root.Logger)
			if err != nil {
				return err
			}

			out := triggersOutput{Dataflow: dataflow.ID.String(), Triggers: []triggerOutput{}}
			if s := dataflow.Triggers; s != nil {
				out.HasSettings = true
				out.HasSchedules = s.HasAnySchedules()
				for _, t := range s.Triggers {
					out.Triggers = append(out.Triggers, newTriggerOutput(t))
				}
				for _, e := range s.AllInvalid() {
					out.Invalid = append(out.Invalid, invalidOutput{Path: e.Path(), Error: e.Err.Error()})
				}
			}

			if root.Options.IsJSON() {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			if dataflow.Triggers == nil {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Dataflow %q has no trigger settings.\n", out.Dataflow)
				return err
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Title", "Events", "Conditions"})
			for _, item := range out.Triggers {
				var events []string
				for _, e := range item.Events {
					events = append(events, e.Description)
				}
				t.AppendRow(table.Row{item.ID, valueOrDash(item.Title), valueOrDash(strings.Join(events, "\n")), len(item.Conditions)})
			}
			t.Render()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dataflow.Triggers.String())
			return err
		},
	}
}

func newTriggerOutput(t *trigger.Trigger) triggerOutput {
	out := triggerOutput{ID: t.ID, Title: t.Title, Events: []eventOutput{}}
	for _, e := range t.Events {
		out.Events = append(out.Events, eventOutput{Kind: e.Kind().String(), Description: e.String()})
	}
	for _, c := range t.Conditions {
		out.Conditions = append(out.Conditions, c.String())
	}
	return out
}
