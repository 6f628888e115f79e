package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jengzang/media-geotag-mapper/internal/models"
	"github.com/jengzang/media-geotag-mapper/internal/render"
	"github.com/jengzang/media-geotag-mapper/internal/spatial"
)

// Config 应用配置
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"` // empty disables auth
	LogLevel  string `yaml:"log_level"`
	LogPretty bool   `yaml:"log_pretty"`
	RateLimit int    `yaml:"rate_limit"` // requests per minute per IP

	MediaFolders   []string `yaml:"media_folders"`
	FilesPerFolder int      `yaml:"files_per_folder"` // 0 imports every file
	FFprobeBin     string   `yaml:"ffprobe_bin"`

	LongitudeCutoff     float64 `yaml:"longitude_cutoff"`
	InterpolationPoints int     `yaml:"interpolation_points"`
	DistanceUnit        string  `yaml:"distance_unit"`
	SortBy              string  `yaml:"sort_by"`

	Map      render.MapStyle `yaml:"map"`
	FlipRect *models.Rect    `yaml:"flip_rect,omitempty"` // no default
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:                ":8080",
		DBPath:              "./data/geotag/media.db",
		LogLevel:            "info",
		RateLimit:           120,
		FFprobeBin:          "ffprobe",
		LongitudeCutoff:     spatial.DefaultLongitudeCutoff,
		InterpolationPoints: spatial.DefaultInterpolationPoints,
		DistanceUnit:        "miles",
		SortBy:              string(models.SortByCapture),
		Map:                 render.DefaultMapStyle(),
	}
}

// Load 加载配置
// Defaults are overlaid by the YAML file named in GEOTAG_CONFIG, then by environment
// variables (including a .env file in the working directory).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("GEOTAG_CONFIG"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.normalize()

	return cfg, nil
}

// LoadFile overlays values from a YAML file
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// PathOptions returns the path construction settings
func (c *Config) PathOptions() spatial.PathOptions {
	return spatial.PathOptions{
		LongitudeCutoff: c.LongitudeCutoff,
		Points:          c.InterpolationPoints,
	}
}

func (c *Config) applyEnv() {
	c.Port = getenv("PORT", c.Port)
	c.DBPath = getenv("DB_PATH", c.DBPath)
	c.JWTSecret = getenv("JWT_SECRET", c.JWTSecret)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getenvBool("LOG_PRETTY", c.LogPretty)
	c.RateLimit = getenvInt("RATE_LIMIT", c.RateLimit)

	if v := os.Getenv("MEDIA_FOLDERS"); v != "" {
		c.MediaFolders = splitList(v)
	}
	c.FilesPerFolder = getenvInt("FILES_PER_FOLDER", c.FilesPerFolder)
	c.FFprobeBin = getenv("FFPROBE_BIN", c.FFprobeBin)

	c.LongitudeCutoff = getenvFloat("LONGITUDE_CUTOFF", c.LongitudeCutoff)
	c.InterpolationPoints = getenvInt("INTERPOLATION_POINTS", c.InterpolationPoints)
	c.DistanceUnit = getenv("DISTANCE_UNIT", c.DistanceUnit)
	c.SortBy = getenv("SORT_BY", c.SortBy)

	c.Map.StartLat = getenvFloat("MAP_START_LAT", c.Map.StartLat)
	c.Map.StartLon = getenvFloat("MAP_START_LON", c.Map.StartLon)
	c.Map.Zoom = getenvInt("MAP_ZOOM", c.Map.Zoom)
	c.Map.Tiles = getenv("MAP_TILES", c.Map.Tiles)
	c.Map.Marker = getenv("MAP_MARKER", c.Map.Marker)
	c.Map.MarkerColor = getenv("MAP_MARKER_COLOR", c.Map.MarkerColor)
	c.Map.Radius = getenvFloat("MAP_RADIUS", c.Map.Radius)
	c.Map.PathColor = getenv("MAP_PATH_COLOR", c.Map.PathColor)
	c.Map.PathWeight = getenvFloat("MAP_PATH_WEIGHT", c.Map.PathWeight)
}

func (c *Config) normalize() {
	if c.InterpolationPoints < 2 {
		c.InterpolationPoints = 2
	}
	if c.Map.Radius <= 0 {
		c.Map.Radius = render.DefaultMapStyle().Radius
	}
	if c.Map.Marker != render.MarkerPin {
		c.Map.Marker = render.MarkerCircle
	}
	if c.FilesPerFolder < 0 {
		c.FilesPerFolder = 0
	}
	if c.RateLimit < 1 {
		c.RateLimit = 1
	}
	c.SortBy = string(models.ParseSortKey(c.SortBy))
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}
