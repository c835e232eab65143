package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexanderjulianmartinez/upload-watch/internal/config"
	"github.com/alexanderjulianmartinez/upload-watch/internal/pipeline"
	"github.com/alexanderjulianmartinez/upload-watch/internal/report"
	"github.com/alexanderjulianmartinez/upload-watch/internal/table"
)

// errValidationFailed is returned after the report is written when the
// upload has a blocking issue.
var errValidationFailed = errors.New("validation failed")

const schemaLookupTimeout = 30 * time.Second

func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate one CSV, TSV or Parquet file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), v, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().String("schema", "", "Schema name (default wellness-survey)")
	cmd.Flags().String("source", "", "Schema source: builtin, config, mysql, postgres or sqlite")
	cmd.Flags().String("dsn", "", "Database connection string for database sources")
	cmd.Flags().String("database", "", "MySQL schema or PostgreSQL namespace holding the table")
	cmd.Flags().String("table", "", "Table whose columns define the schema")
	cmd.Flags().String("duration-column", "", "Duration column for database-derived schemas")
	cmd.Flags().Bool("fail-fast", true, "Stop type checking at the first unparseable column")
	cmd.Flags().String("na-policy", "", "Missing-value policy: none, drop-na or drop-na-sample")
	cmd.Flags().Int("sample", 0, "Number of preview rows")
	cmd.Flags().String("output", "text", "Output format: text or json")
	cmd.Flags().String("color", "auto", "Colored output: auto, yes or no")
	mustBind(v, cmd.Flags())
	return cmd
}

// applyOverrides copies flag and environment values over the config file.
func applyOverrides(v *viper.Viper, cfg *config.Config) {
	strs := map[string]*string{
		"schema":          &cfg.Schema.Name,
		"source":          &cfg.Schema.Source,
		"dsn":             &cfg.Schema.DSN,
		"database":        &cfg.Schema.Database,
		"table":           &cfg.Schema.Table,
		"duration-column": &cfg.Schema.DurationColumn,
		"na-policy":       &cfg.Checks.NAPolicy,
	}
	for key, dst := range strs {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	if v.IsSet("fail-fast") {
		cfg.Checks.FailFast = v.GetBool("fail-fast")
	}
	if v.IsSet("sample") {
		cfg.Checks.SampleSize = v.GetInt("sample")
	}
}

func runCheck(ctx context.Context, v *viper.Viper, path string, stdout, stderr io.Writer) error {
	logger := newLogger(v, stderr)

	output := v.GetString("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("invalid output format: %s (expected text or json)", output)
	}
	useColor := !color.NoColor
	if c := v.GetString("color"); c != "auto" {
		b, err := parseBoolString(c)
		if err != nil {
			return err
		}
		useColor = b
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	applyOverrides(v, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	opt, err := cfg.Options()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	lookupCtx, cancel := context.WithTimeout(ctx, schemaLookupTimeout)
	defer cancel()
	desc, err := cfg.Descriptor(lookupCtx)
	if err != nil {
		return fmt.Errorf("resolve schema: %w", err)
	}
	logger.Printf("schema %s: %d required columns, %d typed", desc.Name, len(desc.Required), len(desc.Types))

	t, err := table.Load(path)
	if err != nil {
		return err
	}
	logger.Printf("loaded %s: %d rows, %d columns", path, t.Len(), len(t.Columns()))

	res := pipeline.Run(t, desc, opt)
	logger.Printf("pipeline reached %s stage with %d issue(s)", res.Stage, len(res.Report.Issues))

	switch output {
	case "json":
		err = report.WriteJSON(stdout, report.Build(path, res))
	default:
		err = report.WriteText(stdout, path, res, report.TextOptions{Color: useColor})
	}
	if err != nil {
		return err
	}
	if !res.Passed() {
		return errValidationFailed
	}
	return nil
}
