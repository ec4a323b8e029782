// Package main provides a CLI for generating and running PostgreSQL
// generate_series queries.
//
// The CLI supports:
//   - sql: Print the generated query and bind arguments without a database
//   - run: Execute the series against a configured database and print rows
//   - config: Show the effective configuration
//   - version: Print version information
//
// The sql command needs no database. The run command reads connection
// settings from pgseries.yaml, PGSERIES_* environment variables, or the
// --db flag.
//
// Usage:
//
//	pgseries [flags] <command>
package main

func main() {
	Execute()
}
