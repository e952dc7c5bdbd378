// Package config loads service settings from the environment; command
// flags may then override them.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/meur/gscheck/internal/chart"
)

// Config holds the server settings
type Config struct {
	Port        string        `env:"GSCHECK_PORT" envDefault:"8080"`
	DataSource  string        `env:"GSCHECK_DATA" envDefault:"./GS.json"` // file path or http(s) URL
	NamesSource string        `env:"GSCHECK_NAMES"`                       // optional name cache file or URL
	DBPath      string        `env:"GSCHECK_DB"`                          // optional SQLite name store
	StaticDir   string        `env:"GSCHECK_STATIC_DIR" envDefault:"./web"`
	CORSOrigins []string      `env:"GSCHECK_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:*"`
	ChartWidth  int           `env:"GSCHECK_CHART_WIDTH" envDefault:"900"`
	ChartHeight int           `env:"GSCHECK_CHART_HEIGHT" envDefault:"360"`
	ItemURL     string        `env:"GSCHECK_ITEM_URL" envDefault:"https://wotlk.evowow.com/?item=%s"`
	SessionIdle time.Duration `env:"GSCHECK_SESSION_IDLE" envDefault:"30m"`
}

// Load reads the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags registers flags that override the loaded values
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Port, "port", c.Port, "Server port")
	fs.StringVar(&c.DataSource, "data", c.DataSource, "GS.json path or URL")
	fs.StringVar(&c.NamesSource, "names", c.NamesSource, "Item name cache path or URL")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite item name database path")
	fs.StringVar(&c.StaticDir, "static", c.StaticDir, "Frontend static files directory")
}

// Viewport returns the default chart surface
func (c Config) Viewport() chart.Viewport {
	vp := chart.DefaultViewport()
	if c.ChartWidth > 0 {
		vp.Width = float64(c.ChartWidth)
	}
	if c.ChartHeight > 0 {
		vp.Height = float64(c.ChartHeight)
	}
	return vp
}
