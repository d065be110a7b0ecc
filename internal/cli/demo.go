package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/petrijr/featuretour"
	"github.com/petrijr/featuretour/internal/ui"
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/recorder"
)

type demoOptions struct {
	app     *app
	LogFile string
	Save    bool
}

func NewDemoCommand(a *app) *cobra.Command {
	o := &demoOptions{app: a}
	c := &cobra.Command{
		Use:   "demo",
		Short: "Runs the demo screen with its tours and the recorder.",
		Long:  "Runs the demo screen in the terminal. Stored tours are added to the tour menu, and with --save the recorded steps are stored when the demo exits.",
		Args:  cobra.NoArgs,
		RunE:  o.Run,
	}
	c.Flags().String("recorder-escape-key", "esc", "Key that ends a recording")
	c.Flags().Duration("recorder-preview-restore-delay", featuretour.DefaultPreviewRestoreDelay, "Delay before the recorder returns after a preview starts")
	c.Flags().StringVar(&o.LogFile, "log-file", "", "Write logs to this file; the screen owns stdout and stderr")
	c.Flags().BoolVar(&o.Save, "save", false, "Store the recorded steps under tour.default_id on exit")
	return c
}

func (o *demoOptions) Run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := o.app.cfg

	var logOut io.Writer = io.Discard
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := cfg.Logger(logOut)

	return o.app.withStore(ctx, func(b *featuretour.StoreBundle) error {
		widgets := ui.NewDemoWidgets()
		screen := ui.NewScreen(ui.DemoWidth, ui.DemoHeight, widgets.Root)

		var program *tea.Program
		session := featuretour.NewSession(featuretour.SessionConfig{
			Surface:             screen,
			Observer:            api.NewLoggingObserver(logger),
			Logger:              logger,
			History:             b.Events,
			RecorderObserver:    recorder.NewLoggingObserver(logger),
			EscapeKey:           cfg.Recorder.EscapeKey,
			PreviewRestoreDelay: cfg.Recorder.PreviewRestoreDelay,
			OnPreviewRestore: func() {
				if program != nil {
					program.Send(ui.PreviewRestoredMsg{})
				}
			},
		})
		defer session.Close(ctx)

		if err := ui.SetupDemo(session, widgets); err != nil {
			return err
		}
		if n, err := b.LoadCatalog(ctx, session.Catalog); err != nil {
			logger.WarnContext(ctx, "stored_tours_skipped", "loaded", n, "error", err)
		}

		model := ui.NewModel(ctx, session, screen, widgets, cfg.Tour.DefaultName, cfg.Tour.DefaultID)
		program = ui.NewProgram(model, tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("demo: %w", err)
		}

		steps := session.Recorder.Steps()
		if !o.Save || len(steps) == 0 {
			return nil
		}
		doc := session.Recorder.Script().Document(cfg.Tour.DefaultName, cfg.Tour.DefaultID)
		if err := b.Tours.SaveTour(ctx, doc); err != nil {
			return fmt.Errorf("save recorded tour: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d steps)\n", doc.TourID, len(doc.Steps))
		return nil
	})
}
