package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexanderjulianmartinez/upload-watch/internal/pipeline"
	"github.com/alexanderjulianmartinez/upload-watch/internal/schema"
	"github.com/alexanderjulianmartinez/upload-watch/internal/source"
)

// Schema sources.
const (
	SourceAny      = ""
	SourceBuiltin  = "builtin"
	SourceConfig   = "config"
	SourceMySQL    = "mysql"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

type Config struct {
	Schema  SchemaConfig        `yaml:"schema"`
	Schemas []schema.Descriptor `yaml:"schemas"`
	Checks  ChecksConfig        `yaml:"checks"`
}

// SchemaConfig selects the descriptor an upload is validated against.
type SchemaConfig struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	// DSN, Database and Table apply to database sources only.
	DSN            string `yaml:"dsn"`
	Database       string `yaml:"database"`
	Table          string `yaml:"table"`
	DurationColumn string `yaml:"durationColumn"`
}

type ChecksConfig struct {
	FailFast   bool   `yaml:"failFast"`
	NAPolicy   string `yaml:"naPolicy"`
	SampleSize int    `yaml:"sampleSize"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Checks: ChecksConfig{
			FailFast:   true,
			NAPolicy:   string(pipeline.NAPolicyDropNA),
			SampleSize: pipeline.DefaultSampleSize,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDatabase reports whether the schema is read from a database table.
func (c *Config) IsDatabase() bool {
	switch c.Schema.Source {
	case SourceMySQL, SourcePostgres, SourceSQLite:
		return true
	}
	return false
}

func (c *Config) Validate() error {
	switch c.Schema.Source {
	case SourceAny, SourceBuiltin, SourceConfig:
	case SourceMySQL, SourcePostgres, SourceSQLite:
		if c.Schema.DSN == "" {
			return fmt.Errorf("schema.dsn is required for source %s", c.Schema.Source)
		}
		if c.Schema.Table == "" {
			return fmt.Errorf("schema.table is required for source %s", c.Schema.Source)
		}
	default:
		return fmt.Errorf("schema.source must be one of builtin, config, mysql, postgres, sqlite; got %q", c.Schema.Source)
	}

	seen := make(map[string]struct{}, len(c.Schemas))
	for _, d := range c.Schemas {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("schemas: %w", err)
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("schemas: %s is declared twice", d.Name)
		}
		seen[d.Name] = struct{}{}
	}

	if _, err := pipeline.ParseNAPolicy(c.Checks.NAPolicy); err != nil {
		return fmt.Errorf("checks.naPolicy: %w", err)
	}
	if c.Checks.SampleSize < 0 {
		return errors.New("checks.sampleSize must not be negative")
	}
	return nil
}

// Catalog returns the built-in descriptors plus those declared in the file.
// A declared schema replaces a built-in one of the same name.
func (c *Config) Catalog() (*schema.Catalog, error) {
	cat := schema.BuiltinCatalog()
	for _, d := range c.Schemas {
		if err := cat.Add(d); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// Options converts the checks section to pipeline options.
func (c *Config) Options() (pipeline.Options, error) {
	policy, err := pipeline.ParseNAPolicy(c.Checks.NAPolicy)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		FailFast:   c.Checks.FailFast,
		NAPolicy:   policy,
		SampleSize: c.Checks.SampleSize,
	}, nil
}

// SchemaName is the catalog name to look up. It defaults to the wellness
// survey schema.
func (c *Config) SchemaName() string {
	if c.Schema.Name == "" {
		return schema.WellnessSurvey
	}
	return c.Schema.Name
}

// Descriptor resolves the configured schema. Database sources need their
// backend registered, see internal/source/all.
func (c *Config) Descriptor(ctx context.Context) (schema.Descriptor, error) {
	switch c.Schema.Source {
	case SourceBuiltin:
		return schema.BuiltinCatalog().Lookup(c.SchemaName())
	case SourceConfig:
		cat, err := schema.NewCatalog(c.Schemas...)
		if err != nil {
			return schema.Descriptor{}, err
		}
		return cat.Lookup(c.SchemaName())
	case SourceAny:
		cat, err := c.Catalog()
		if err != nil {
			return schema.Descriptor{}, err
		}
		return cat.Lookup(c.SchemaName())
	}

	return source.Load(ctx, source.Config{
		Kind:     c.Schema.Source,
		DSN:      c.Schema.DSN,
		Database: c.Schema.Database,
	}, c.Schema.Table, c.Schema.Name, c.Schema.DurationColumn)
}
