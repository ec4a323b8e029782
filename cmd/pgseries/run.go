package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pgseries/pgseries/internal/cli"
)

var (
	runFlags  seriesFlags
	runDB     string
	runFormat string
	runLimit  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the series against a database and print rows",
	Long: `Execute the generated query against a PostgreSQL database and print
the resulting rows. The connection string comes from --db, the config
file, or PGSERIES_DATABASE_* environment variables.`,
	Example: `  # Ten integers
  pgseries run --db postgres://localhost/mydb --kind int --start 1 --stop 10

  # Daily timestamps with an id column, CSV output
  pgseries run --kind timestamptz --start 2024-01-01 --stop 2024-01-07 \
    --step "1 day" --id --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := runFlags.build()
		if err != nil {
			return cli.ParamError("invalid series parameters", err)
		}

		query, bindArgs, err := s.SQL()
		if err != nil {
			return cli.ParamError("rendering query", err)
		}

		dsn := runDB
		if dsn == "" {
			dsn, err = cfg.DSN()
			if err != nil {
				return cli.ConfigError("resolving database connection", err)
			}
		}

		ctx := cmd.Context()
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = conn.Close(ctx) }()

		log.Debug().Str("query", query).Int("args", len(bindArgs)).Msg("executing series query")

		rows, err := conn.Query(ctx, query, bindArgs...)
		if err != nil {
			return cli.GeneralError("executing query", err)
		}
		defer rows.Close()

		format := resolveFormat()
		limit := resolveLimit()
		n, err := printRows(rows, format, limit)
		if err != nil {
			return cli.GeneralError("reading rows", err)
		}

		log.Debug().Int("rows", n).Msg("done")
		return nil
	},
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&runDB, "db", "", "database connection string (overrides config)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "output format: table or csv (default from config)")
	runCmd.Flags().IntVar(&runLimit, "limit", -1, "cap printed rows; 0 means no cap (default from config)")
}

func resolveFormat() string {
	if runFormat != "" {
		return runFormat
	}
	if cfg != nil && cfg.Run.Format != "" {
		return cfg.Run.Format
	}
	return "table"
}

func resolveLimit() int {
	if runLimit >= 0 {
		return runLimit
	}
	if cfg != nil {
		return cfg.Run.Limit
	}
	return 0
}

// printRows writes the result set to stdout and returns the number of
// rows printed.
func printRows(rows pgx.Rows, format string, limit int) (int, error) {
	header := make([]string, len(rows.FieldDescriptions()))
	for i, fd := range rows.FieldDescriptions() {
		header[i] = fd.Name
	}

	var w *csv.Writer
	switch format {
	case "csv":
		w = csv.NewWriter(os.Stdout)
		if err := w.Write(header); err != nil {
			return 0, err
		}
	case "table":
		fmt.Println(strings.Join(header, "\t"))
	default:
		return 0, fmt.Errorf("unknown output format %q (want table or csv)", format)
	}

	n := 0
	for rows.Next() {
		if limit > 0 && n >= limit {
			break
		}
		values, err := rows.Values()
		if err != nil {
			return n, err
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = fmt.Sprintf("%v", v)
		}
		if w != nil {
			if err := w.Write(record); err != nil {
				return n, err
			}
		} else {
			fmt.Println(strings.Join(record, "\t"))
		}
		n++
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return n, err
		}
	}
	return n, rows.Err()
}
