// Package config loads the display scheme and run settings from defaults,
// a YAML file, TRADETABLES_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "TRADETABLES_"

	DefaultTableWidth     = 600
	DefaultRowHeight      = 25
	DefaultTitleFontSize  = "large"
	DefaultFormat         = "table"
	DefaultPixelsPerChar  = 8
	DefaultInitialBalance = 10000.0
)

// Scheme holds rendering options shared by every table widget.
type Scheme struct {
	TableWidth    int    `koanf:"table_width"`     // pixels
	RowHeight     int    `koanf:"row_height"`      // pixels per table row
	TitleFontSize string `koanf:"title_font_size"` // css font-size of table titles
	Format        string `koanf:"format"`          // table|markdown|csv|html
	PixelsPerChar int    `koanf:"pixels_per_char"` // terminal conversion for widths
}

type Config struct {
	Scheme         Scheme  `koanf:"scheme"`
	InitialBalance float64 `koanf:"initial_balance"`
	DebugTopics    string  `koanf:"debug_topics"`
}

// DefaultScheme returns the scheme used when nothing is configured.
func DefaultScheme() Scheme {
	return Scheme{
		TableWidth:    DefaultTableWidth,
		RowHeight:     DefaultRowHeight,
		TitleFontSize: DefaultTitleFontSize,
		Format:        DefaultFormat,
		PixelsPerChar: DefaultPixelsPerChar,
	}
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"table-width":     "scheme.table_width",
	"row-height":      "scheme.row_height",
	"format":          "scheme.format",
	"initial-balance": "initial_balance",
	"debug-topics":    "debug_topics",
}

// FindConfigFile returns explicit if set, else the first tradetables.yaml or
// tradetables.yml in the working directory, else "".
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"tradetables.yaml", "tradetables.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	def := DefaultScheme()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"scheme.table_width":     def.TableWidth,
		"scheme.row_height":      def.RowHeight,
		"scheme.title_font_size": def.TitleFontSize,
		"scheme.format":          def.Format,
		"scheme.pixels_per_char": def.PixelsPerChar,
		"initial_balance":        DefaultInitialBalance,
		"debug_topics":           "",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := FindConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// TRADETABLES_SCHEME__TABLE_WIDTH -> scheme.table_width
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, known := flagKeys[f.Name]
			if !f.Changed || !known {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Scheme.TableWidth <= 0 {
		return fmt.Errorf("scheme.table_width must be positive, got %d", c.Scheme.TableWidth)
	}
	if c.Scheme.RowHeight <= 0 {
		return fmt.Errorf("scheme.row_height must be positive, got %d", c.Scheme.RowHeight)
	}
	if c.Scheme.PixelsPerChar < 0 {
		return fmt.Errorf("scheme.pixels_per_char must not be negative, got %d", c.Scheme.PixelsPerChar)
	}
	if c.InitialBalance <= 0 {
		return fmt.Errorf("initial_balance must be positive, got %g", c.InitialBalance)
	}
	return nil
}
