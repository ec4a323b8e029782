package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgseries/pgseries/internal/cli"
)

var (
	sqlFlags      seriesFlags
	sqlQuestion   bool
	sqlShowNoArgs bool
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Print the generated query and bind arguments",
	Long: `Print the generated generate_series query for the given parameters,
without connecting to a database.`,
	Example: `  # Integer series 0..9
  pgseries sql --kind int --start 0 --stop 9

  # Weekly date buckets as ranges
  pgseries sql --kind date --start 2024-01-01 --stop 2024-06-30 --step "1 week" --range

  # Query text with ? placeholders for embedding
  pgseries sql --kind int --start 0 --stop 9 --question`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sqlFlags.build()
		if err != nil {
			return cli.ParamError("invalid series parameters", err)
		}

		var (
			query    string
			bindArgs []any
		)
		if sqlQuestion {
			query, bindArgs, err = s.ToSql()
		} else {
			query, bindArgs, err = s.SQL()
		}
		if err != nil {
			return cli.ParamError("rendering query", err)
		}

		fmt.Println(query)
		if sqlShowNoArgs {
			return nil
		}
		for i, arg := range bindArgs {
			fmt.Printf("-- $%d = %v\n", i+1, arg)
		}
		return nil
	},
}

func init() {
	sqlFlags.register(sqlCmd)
	sqlCmd.Flags().BoolVar(&sqlQuestion, "question", false, "render ? placeholders instead of $n")
	sqlCmd.Flags().BoolVar(&sqlShowNoArgs, "no-args", false, "omit the bind argument listing")
}
