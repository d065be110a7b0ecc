package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/recorder"
)

type generator func(tourName, tourID string, steps []api.RecordedStep) (string, error)

var generators = map[string]generator{
	"code": recorder.GenerateCode,
	"json": recorder.GenerateData,
	"yaml": recorder.GenerateYAML,
}

type generateOptions struct {
	app    *app
	Name   string
	ID     string
	Output string
}

func NewGenerateCommand(a *app) *cobra.Command {
	o := &generateOptions{app: a}
	c := &cobra.Command{
		Use:       "generate code|json|yaml FILE",
		Example:   "tourctl generate code recorded.json --name Onboarding > onboarding_tour.go",
		Short:     "Renders a tour document as Go code, JSON or YAML.",
		Long:      "Renders a JSON or YAML tour document (use - for stdin) as a Go tour definition, or converts it between JSON and YAML.",
		ValidArgs: []string{"code", "json", "yaml"},
		Args:      cobra.ExactArgs(2),
		RunE:      o.Run,
	}
	c.Flags().StringVar(&o.Name, "name", "", "Tour name, defaults to the document's name")
	c.Flags().StringVar(&o.ID, "id", "", "Tour id, defaults to the document's id")
	c.Flags().StringVarP(&o.Output, "output", "o", "", "Write to this file instead of stdout")
	return c
}

func (o *generateOptions) Run(cmd *cobra.Command, args []string) error {
	gen, ok := generators[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("unknown format %q, supported formats are: code, json, yaml", args[0])
	}

	data, err := readInput(cmd, args[1])
	if err != nil {
		return err
	}
	doc, err := recorder.ParseData(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[1], err)
	}

	name := firstNonEmpty(o.Name, doc.TourName, o.app.cfg.Tour.DefaultName)
	id := firstNonEmpty(o.ID, doc.TourID, o.app.cfg.Tour.DefaultID)
	out, err := gen(name, id, doc.Recorded())
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", args[0], err)
	}

	if o.Output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(o.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.Output, err)
	}
	o.app.logger.InfoContext(cmd.Context(), "tour_generated",
		"format", args[0],
		"tour_id", id,
		"output", o.Output,
	)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
