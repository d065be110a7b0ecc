package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/petrijr/featuretour"
)

type historyOptions struct {
	app *app
}

func NewHistoryCommand(a *app) *cobra.Command {
	o := &historyOptions{app: a}
	return &cobra.Command{
		Use:     "history RUN_ID",
		Example: "tourctl history 4f1c2a9e-...",
		Short:   "Prints the recorded events of one tour run.",
		Long:    "Prints the recorded events of one tour run. Run history is kept by the sqlite store.",
		Args:    cobra.ExactArgs(1),
		RunE:    o.Run,
	}
}

func (o *historyOptions) Run(cmd *cobra.Command, args []string) error {
	return o.app.withStore(cmd.Context(), func(b *featuretour.StoreBundle) error {
		events, err := b.History(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("history of %s: %w", args[0], err)
		}
		if len(events) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no events for run %s\n", args[0])
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, ev := range events {
			step := "-"
			if ev.Step >= 0 {
				step = fmt.Sprint(ev.Step + 1)
			}
			rows = append(rows, []string{
				ev.At.Format(time.RFC3339),
				string(ev.Type),
				ev.TourName,
				step,
				ev.ElementID,
				ev.Detail,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"TIME", "EVENT", "TOUR", "STEP", "ELEMENT", "DETAIL"}, rows))
		return nil
	})
}
