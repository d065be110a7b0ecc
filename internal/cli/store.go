package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	_ "modernc.org/sqlite"
	"sigs.k8s.io/yaml"

	"github.com/petrijr/featuretour"
	"github.com/petrijr/featuretour/internal/config"
	"github.com/petrijr/featuretour/internal/persistence"
	"github.com/petrijr/featuretour/pkg/api"
	"github.com/petrijr/featuretour/pkg/recorder"
)

// openStore connects to the configured backend. Only the sqlite driver
// keeps run history; the others record it in memory for the process.
// The returned func releases the connection.
func openStore(ctx context.Context, cfg config.StoreConfig) (*featuretour.StoreBundle, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory:
		return featuretour.NewInMemoryBundle(), noop, nil

	case config.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.DSN, err)
		}
		bundle, err := featuretour.NewSQLiteBundle(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return bundle, db.Close, nil

	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		tours, err := persistence.NewPostgresTourStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return &featuretour.StoreBundle{Tours: tours, Events: persistence.NewInMemoryEventStore()}, db.Close, nil

	case config.DriverRedis:
		opts, err := redisOptions(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
		}
		tours := persistence.NewRedisTourStore(client, cfg.Prefix)
		return &featuretour.StoreBundle{Tours: tours, Events: persistence.NewInMemoryEventStore()}, client.Close, nil

	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DSN))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ping mongo: %w", err)
		}
		tours := persistence.NewMongoTourStore(client, cfg.Database, cfg.Collection)
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return &featuretour.StoreBundle{Tours: tours, Events: persistence.NewInMemoryEventStore()}, closeFn, nil
	}
	return nil, nil, api.NewValidationError(config.KeyStoreDriver, fmt.Sprintf("unknown driver %q", cfg.Driver))
}

// redisOptions accepts either a redis:// URL or a bare host:port.
func redisOptions(dsn string) (*redis.Options, error) {
	if strings.Contains(dsn, "://") {
		opts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: dsn}, nil
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(ctx context.Context, fn func(*featuretour.StoreBundle) error) (err error) {
	bundle, closeFn, err := openStore(ctx, a.cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}()
	return fn(bundle)
}

func NewStoreCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "store",
		Short: "Manages stored tour documents.",
	}
	c.AddCommand(
		newStoreSaveCommand(a),
		newStoreGetCommand(a),
		newStoreListCommand(a),
		newStoreDeleteCommand(a),
	)
	return c
}

type storeSaveOptions struct {
	app *app
	ID  string
}

func newStoreSaveCommand(a *app) *cobra.Command {
	o := &storeSaveOptions{app: a}
	c := &cobra.Command{
		Use:     "save FILE",
		Example: "tourctl store save my-tour.yaml",
		Short:   "Validates a JSON or YAML tour document and stores it.",
		Args:    cobra.ExactArgs(1),
		RunE:    o.Run,
	}
	c.Flags().StringVar(&o.ID, "id", "", "Store the document under this tour id")
	return c
}

func (o *storeSaveOptions) Run(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := recorder.ParseData(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	if o.ID != "" {
		doc.TourID = o.ID
	}

	return o.app.withStore(cmd.Context(), func(b *featuretour.StoreBundle) error {
		if err := b.Tours.SaveTour(cmd.Context(), doc); err != nil {
			return err
		}
		o.app.logger.InfoContext(cmd.Context(), "tour_saved",
			"tour_id", doc.TourID,
			"steps", len(doc.Steps),
			"driver", string(o.app.cfg.Store.Driver),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d steps)\n", doc.TourID, len(doc.Steps))
		return nil
	})
}

type storeGetOptions struct {
	app    *app
	Format string
}

func newStoreGetCommand(a *app) *cobra.Command {
	o := &storeGetOptions{app: a}
	c := &cobra.Command{
		Use:   "get TOUR_ID",
		Short: "Prints a stored tour document.",
		Args:  cobra.ExactArgs(1),
		RunE:  o.Run,
	}
	c.Flags().StringVar(&o.Format, "format", "yaml", "The output format: json or yaml")
	return c
}

func (o *storeGetOptions) Run(cmd *cobra.Command, args []string) error {
	return o.app.withStore(cmd.Context(), func(b *featuretour.StoreBundle) error {
		doc, err := b.Tours.GetTour(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get %s: %w", args[0], err)
		}
		out, err := marshalDocument(doc, o.Format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	})
}

func marshalDocument(doc api.TourDocument, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unknown format %q, supported formats are: json, yaml", format)
}

type storeListOptions struct {
	app *app
}

func newStoreListCommand(a *app) *cobra.Command {
	o := &storeListOptions{app: a}
	return &cobra.Command{
		Use:   "list",
		Short: "Lists stored tours.",
		Args:  cobra.NoArgs,
		RunE:  o.Run,
	}
}

func (o *storeListOptions) Run(cmd *cobra.Command, args []string) error {
	return o.app.withStore(cmd.Context(), func(b *featuretour.StoreBundle) error {
		docs, err := b.Tours.ListTours(cmd.Context())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no tours stored")
			return nil
		}
		rows := make([][]string, 0, len(docs))
		for _, doc := range docs {
			rows = append(rows, []string{doc.TourID, doc.TourName, fmt.Sprint(len(doc.Steps))})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME", "STEPS"}, rows))
		return nil
	})
}

type storeDeleteOptions struct {
	app *app
}

func newStoreDeleteCommand(a *app) *cobra.Command {
	o := &storeDeleteOptions{app: a}
	return &cobra.Command{
		Use:   "delete TOUR_ID",
		Short: "Deletes a stored tour.",
		Args:  cobra.ExactArgs(1),
		RunE:  o.Run,
	}
}

func (o *storeDeleteOptions) Run(cmd *cobra.Command, args []string) error {
	return o.app.withStore(cmd.Context(), func(b *featuretour.StoreBundle) error {
		if err := b.Tours.DeleteTour(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	})
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
