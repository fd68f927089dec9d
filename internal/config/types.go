package config

// Config is the top-level skillmap configuration, corresponding to skillmap.yml.
type Config struct {
	// Source is the startup data source: an http(s) URL or a local path.
	Source   string       `yaml:"source" koanf:"source"`
	LogLevel string       `yaml:"log_level" koanf:"log_level"`
	View     ViewConfig   `yaml:"view" koanf:"view"`
	Layout   LayoutConfig `yaml:"layout" koanf:"layout"`
	Server   ServerConfig `yaml:"server" koanf:"server"`
}

// ViewConfig holds window and viewport settings for `skillmap view`.
type ViewConfig struct {
	Title            string  `yaml:"title" koanf:"title"`
	Width            int     `yaml:"width" koanf:"width"`
	Height           int     `yaml:"height" koanf:"height"`
	Resizable        bool    `yaml:"resizable" koanf:"resizable"`
	ShowFPS          bool    `yaml:"show_fps" koanf:"show_fps"`
	Debug            bool    `yaml:"debug" koanf:"debug"`
	Watch            bool    `yaml:"watch" koanf:"watch"`
	MinScale         float64 `yaml:"min_scale" koanf:"min_scale"`
	MaxScale         float64 `yaml:"max_scale" koanf:"max_scale"`
	InitialScale     float64 `yaml:"initial_scale" koanf:"initial_scale"`
	WheelSensitivity float64 `yaml:"wheel_sensitivity" koanf:"wheel_sensitivity"`
	KeyStep          float64 `yaml:"key_step" koanf:"key_step"`
	// LoadTimeout is a Go duration string such as "10s".
	LoadTimeout   string `yaml:"load_timeout" koanf:"load_timeout"`
	ScreenshotDir string `yaml:"screenshot_dir" koanf:"screenshot_dir"`
	// Script is an optional YAML test script replayed after startup.
	Script string `yaml:"script" koanf:"script"`
}

// LayoutConfig mirrors skillmap.LayoutOptions.
type LayoutConfig struct {
	CellSize      float64 `yaml:"cell_size" koanf:"cell_size"`
	CellMargin    float64 `yaml:"cell_margin" koanf:"cell_margin"`
	IslandPadding float64 `yaml:"island_padding" koanf:"island_padding"`
	TitleHeight   float64 `yaml:"title_height" koanf:"title_height"`
	IslandGap     float64 `yaml:"island_gap" koanf:"island_gap"`
	IslandsPerRow int     `yaml:"islands_per_row" koanf:"islands_per_row"`
}

// ServerConfig holds settings for `skillmap serve`.
type ServerConfig struct {
	Addr string `yaml:"addr" koanf:"addr"`
	// Data is the skills document published at /skills.json.
	Data string `yaml:"data" koanf:"data"`
	// Static is an optional directory served at /.
	Static string `yaml:"static" koanf:"static"`
	// AllowedOrigins defaults to localhost origins when empty.
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" koanf:"allowed_origins"`
}
