package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/keboola/kbc-conform/internal/pkg/schedule"
)

type scheduleOutput struct {
	Kind        string `json:"kind"`
	Frequency   string `json:"frequency"`
	Timezone    string `json:"timezone,omitempty"`
	Expression  string `json:"expression,omitempty"`
	Hour        *int   `json:"hour,omitempty"`
	Minute      *int   `json:"minute,omitempty"`
	NextRun     string `json:"nextRun,omitempty"`
	Description string `json:"description"`
	Block       any    `json:"advancedScheduleJson,omitempty"`
}

func ScheduleCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <file>",
		Short: "Classify a schedule payload",
		Long: `Classify a schedule payload.

The file contains a JSON object with the "scheduleExpression", "timezone",
"hour", "minute" and "advancedScheduleJson" keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := root.readJSONFile(args[0])
			if err != nil {
				return err
			}
			s, err := schedule.FromRaw(raw)
			if err != nil {
				return err
			}
			root.Logger.Debugf(cmd.Context(), `Schedule classified as "%s".`, s.Kind())

			out := root.scheduleOutput(cmd.Context(), s)
			if root.Options.IsJSON() {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendRows([]table.Row{
				{"Kind", out.Kind},
				{"Frequency", out.Frequency},
				{"Timezone", valueOrDash(out.Timezone)},
				{"Expression", valueOrDash(out.Expression)},
				{"Hour", formatInt(out.Hour)},
				{"Minute", formatInt(out.Minute)},
				{"Next run", valueOrDash(out.NextRun)},
			})
			t.Render()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.Description)
			return err
		},
	}
}

func (root *RootCommand) scheduleOutput(ctx context.Context, s schedule.Schedule) scheduleOutput {
	out := scheduleOutput{
		Kind:        s.Kind().String(),
		Frequency:   s.Frequency().String(),
		Timezone:    s.Timezone(),
		Description: s.String(),
	}

	switch v := s.(type) {
	case *schedule.Simple:
		out.Hour, out.Minute = v.Hour(), v.Minute()
	case *schedule.CronLike:
		out.Expression = v.Expression()
		out.Hour, out.Minute = v.Hour(), v.Minute()
		if next, err := v.Next(root.clock.Now()); err == nil {
			out.NextRun = next.UTC().Format(time.RFC3339)
		} else {
			root.Logger.Debugf(ctx, "Next run: %s", err)
		}
	case *schedule.Advanced:
		out.Hour, out.Minute = v.Hour(), v.Minute()
		out.Block = v.Block()
	}
	return out
}

func formatInt(v *int) string {
	if v == nil {
		return noValue
	}
	return strconv.Itoa(*v)
}
