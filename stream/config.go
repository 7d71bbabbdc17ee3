package stream

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the demo.
type Config struct {
	Window struct {
		Backend   string `yaml:"backend"`
		Width     int    `yaml:"width"`
		Height    int    `yaml:"height"`
		Title     string `yaml:"title"`
		FrameRate int    `yaml:"frameRate"`
		Antialias bool   `yaml:"antialias"`
	} `yaml:"window"`
	Trail struct {
		Capacity int     `yaml:"capacity"`
		Points   int     `yaml:"points"`
		Shape    string  `yaml:"shape"`
		Stretch  float64 `yaml:"stretch"`
		Growth   float64 `yaml:"growth"`
		Colours  string  `yaml:"colours"`
		Seed     int64   `yaml:"seed"`
		Radius   float64 `yaml:"radius"`
	} `yaml:"trail"`
	Orbit struct {
		Width    float64 `yaml:"width"`
		Height   float64 `yaml:"height"`
		PeriodMs int64   `yaml:"periodMs"`
	} `yaml:"orbit"`
	Font struct {
		Path string  `yaml:"path"`
		Size float64 `yaml:"size"`
	} `yaml:"font"`
	Audio struct {
		Enabled bool    `yaml:"enabled"`
		Pitch   float64 `yaml:"pitch"`
	} `yaml:"audio"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
	Api struct {
		Addr string `yaml:"addr"`
	} `yaml:"api"`
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
		Matrix struct {
			Width  int `yaml:"width"`
			Height int `yaml:"height"`
		} `yaml:"matrix"`
	} `yaml:"mqtt"`
}

// DefaultConfig returns the settings the original demo was hard-wired with.
func DefaultConfig() Config {
	var c Config
	c.Window.Backend = "desktop"
	c.Window.Width = 1000
	c.Window.Height = 1000
	c.Window.Title = "Afterimage"
	c.Window.FrameRate = 60
	c.Window.Antialias = true

	c.Trail.Capacity = 20
	c.Trail.Points = 30
	c.Trail.Shape = "ellipse"
	c.Trail.Stretch = 1.15
	c.Trail.Growth = 1.005
	c.Trail.Colours = "random"
	c.Trail.Radius = 100

	c.Orbit.Width = 400
	c.Orbit.Height = 400

	c.Font.Path = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	c.Font.Size = 20

	c.Audio.Pitch = 880

	c.Mqtt.Topics.Stream = "home/afterimage/stream"
	c.Mqtt.Matrix.Width = 32
	c.Mqtt.Matrix.Height = 32
	return c
}

// ReadConfig decodes the YAML file at path over the defaults. A missing file
// leaves the defaults in place.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate rejects settings the demo cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.FrameRate <= 0 {
		return fmt.Errorf("frame rate %d must be positive", c.Window.FrameRate)
	}
	if c.Trail.Capacity < 1 || c.Trail.Capacity > 255 {
		return fmt.Errorf("trail capacity %d must be within [1,255]", c.Trail.Capacity)
	}
	if c.Trail.Stretch < 1.05 || c.Trail.Stretch > 1.15 {
		return fmt.Errorf("trail stretch %v must be within [1.05,1.15]", c.Trail.Stretch)
	}
	switch c.Trail.Shape {
	case "ellipse", "circle", "rectangle", "random":
	default:
		return fmt.Errorf("unknown trail shape %q", c.Trail.Shape)
	}
	switch c.Trail.Colours {
	case "random", "gradient":
	default:
		return fmt.Errorf("unknown colour source %q", c.Trail.Colours)
	}
	if c.Mqtt.URL != "" && (c.Mqtt.Matrix.Width <= 0 || c.Mqtt.Matrix.Height <= 0) {
		return fmt.Errorf("matrix size %dx%d must be positive", c.Mqtt.Matrix.Width, c.Mqtt.Matrix.Height)
	}
	return nil
}
