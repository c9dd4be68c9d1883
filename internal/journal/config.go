package journal

import (
	"encoding/json"
	"os"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// EnvDatabasePath overrides Config.DatabasePath.
	EnvDatabasePath = "JOURNAL_DATABASE_PATH"
	// EnvExportDir overrides Config.ExportDir.
	EnvExportDir = "JOURNAL_EXPORT_DIR"
)

type Config struct {
	DatabasePath       string                     `yaml:"database_path" json:"database_path" jsonschema:"title=Database Path,description=Path of the DuckDB journal file" validate:"required"`
	ExportDir          string                     `yaml:"export_dir" json:"export_dir" jsonschema:"title=Export Directory,description=Directory that receives exported trade files" validate:"required"`
	DefaultBalance     float64                    `yaml:"default_balance" json:"default_balance" jsonschema:"title=Default Balance,description=Starting balance of new backtests,minimum=0" validate:"gt=0"`
	DefaultBalanceType types.BalanceType          `yaml:"default_balance_type" json:"default_balance_type" jsonschema:"title=Default Balance Type,enum=fixed,enum=dynamic" validate:"required,oneof=fixed dynamic"`
	ListOrder          types.TradeOrder           `yaml:"list_order" json:"list_order" jsonschema:"title=List Order,description=Order in which trades are listed,enum=newest_first,enum=oldest_first" validate:"required,oneof=newest_first oldest_first"`
	From               optional.Option[time.Time] `yaml:"from" json:"from" jsonschema:"title=From,description=Optional first trade date included in reports"`
	To                 optional.Option[time.Time] `yaml:"to" json:"to" jsonschema:"title=To,description=Optional last trade date included in reports"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		DatabasePath:       "journal.duckdb",
		ExportDir:          "exports",
		DefaultBalance:     100000,
		DefaultBalanceType: types.BalanceTypeFixed,
		ListOrder:          types.OrderNewestFirst,
		From:               optional.None[time.Time](),
		To:                 optional.None[time.Time](),
	}
}

// UnmarshalYAML implements custom unmarshaling for Config. Missing fields keep
// their defaults and the date bounds are parsed as YYYY-MM-DD.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type rawConfig struct {
		DatabasePath       *string  `yaml:"database_path"`
		ExportDir          *string  `yaml:"export_dir"`
		DefaultBalance     *float64 `yaml:"default_balance"`
		DefaultBalanceType *string  `yaml:"default_balance_type"`
		ListOrder          *string  `yaml:"list_order"`
		From               *string  `yaml:"from"`
		To                 *string  `yaml:"to"`
	}

	var raw rawConfig
	if err := unmarshal(&raw); err != nil {
		return err
	}

	*c = DefaultConfig()

	if raw.DatabasePath != nil {
		c.DatabasePath = *raw.DatabasePath
	}

	if raw.ExportDir != nil {
		c.ExportDir = *raw.ExportDir
	}

	if raw.DefaultBalance != nil {
		c.DefaultBalance = *raw.DefaultBalance
	}

	if raw.DefaultBalanceType != nil {
		c.DefaultBalanceType = types.BalanceType(*raw.DefaultBalanceType)
	}

	if raw.ListOrder != nil {
		c.ListOrder = types.TradeOrder(*raw.ListOrder)
	}

	if raw.From != nil {
		from, err := time.Parse(types.DateLayout, *raw.From)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid from date %q", *raw.From)
		}

		c.From = optional.Some(from)
	}

	if raw.To != nil {
		to, err := time.Parse(types.DateLayout, *raw.To)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid to date %q", *raw.To)
		}

		c.To = optional.Some(to)
	}

	return nil
}

// MarshalYAML writes the date bounds as YYYY-MM-DD and leaves unset bounds out.
func (c Config) MarshalYAML() (interface{}, error) {
	type rawConfig struct {
		DatabasePath       string  `yaml:"database_path"`
		ExportDir          string  `yaml:"export_dir"`
		DefaultBalance     float64 `yaml:"default_balance"`
		DefaultBalanceType string  `yaml:"default_balance_type"`
		ListOrder          string  `yaml:"list_order"`
		From               string  `yaml:"from,omitempty"`
		To                 string  `yaml:"to,omitempty"`
	}

	raw := rawConfig{
		DatabasePath:       c.DatabasePath,
		ExportDir:          c.ExportDir,
		DefaultBalance:     c.DefaultBalance,
		DefaultBalanceType: string(c.DefaultBalanceType),
		ListOrder:          string(c.ListOrder),
	}

	if c.From.IsSome() {
		raw.From = c.From.Unwrap().Format(types.DateLayout)
	}

	if c.To.IsSome() {
		raw.To = c.To.Unwrap().Format(types.DateLayout)
	}

	return raw, nil
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.From.IsSome() && c.To.IsSome() && c.To.Unwrap().Before(c.From.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "invalid config: to is before from")
	}

	return nil
}

// LoadConfig reads a YAML config file. An empty path yields DefaultConfig.
// Environment overrides are applied last and the result is validated.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}

		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}
	}

	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadEnvFiles loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	existing := make([]string, 0, len(files))

	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to load env files", err)
	}

	return nil
}

// ApplyEnv overrides paths from JOURNAL_DATABASE_PATH and JOURNAL_EXPORT_DIR.
func (c *Config) ApplyEnv() {
	if value, ok := os.LookupEnv(EnvDatabasePath); ok && value != "" {
		c.DatabasePath = value
	}

	if value, ok := os.LookupEnv(EnvExportDir); ok && value != "" {
		c.ExportDir = value
	}
}

// InWindow reports whether a trade date lies within the From/To bounds.
func (c Config) InWindow(date string) bool {
	if c.From.IsSome() && date < c.From.Unwrap().Format(types.DateLayout) {
		return false
	}

	if c.To.IsSome() && date > c.To.Unwrap().Format(types.DateLayout) {
		return false
	}

	return true
}

// GenerateSchema generates a JSON schema for the Config
func (c *Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(optional.Option[time.Time]{}) {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "trade-journal-config"
	schema.Description = "Configuration schema for the trade journal"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the Config
func (c *Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// FilterStateSchemaJSON returns the JSON schema of a per-backtest filter.
func FilterStateSchemaJSON() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(types.FilterState{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
