// Package config loads and validates backdrop settings.
//
// Settings come from [Default] and are optionally overridden by a TOML file
// passed to [Load]. Keys use snake_case:
//
//	count          = 30
//	min_separation = 60.0
//	attempts       = 100
//	min_out_degree = 1
//	max_out_degree = 3
//	speed          = 0.5
//	seed           = 0     # 0 seeds from the clock
//	node_size      = 8.0
//	label_gap      = 6.0
//	width          = 800.0
//	height         = 400.0
//	labels         = ["Striking Accuracy", "Takedown Defense"]
//
// Unknown keys are rejected so typos surface as INVALID_CONFIG instead of
// being silently ignored.
package config

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/graph"
	"github.com/matzehuels/fightmetrics/pkg/backdrop/render"
	"github.com/matzehuels/fightmetrics/pkg/errors"
)

// Config holds every tunable of one visualization instance.
type Config struct {
	Count         int      `toml:"count" validate:"min=0,max=10000"`
	MinSeparation float64  `toml:"min_separation" validate:"min=0"`
	Attempts      int      `toml:"attempts" validate:"min=1"`
	MinOutDegree  int      `toml:"min_out_degree" validate:"min=0"`
	MaxOutDegree  int      `toml:"max_out_degree" validate:"gtefield=MinOutDegree"`
	Speed         float64  `toml:"speed" validate:"gt=0"`
	Seed          uint64   `toml:"seed"`
	NodeSize      float64  `toml:"node_size" validate:"gt=0"`
	LabelGap      float64  `toml:"label_gap" validate:"min=0"`
	Width         float64  `toml:"width" validate:"gt=0"`
	Height        float64  `toml:"height" validate:"gt=0"`
	Labels        []string `toml:"labels" validate:"min=1,dive,required"`
}

var validate = validator.New()

// Default returns the settings used by the landing page.
func Default() Config {
	return Config{
		Count:         30,
		MinSeparation: 60,
		Attempts:      geometry.DefaultAttempts,
		MinOutDegree:  graph.DefaultDegree.Min,
		MaxOutDegree:  graph.DefaultDegree.Max,
		Speed:         0.5,
		NodeSize:      render.DefaultStyle.NodeSize,
		LabelGap:      render.DefaultStyle.LabelGap,
		Width:         800,
		Height:        400,
		Labels:        append([]string(nil), graph.DefaultLabels...),
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and the degree bounds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", describe(err))
	}
	return nil
}

// describe turns the first validator failure into a readable sentence.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid config"
	}
	e := verrs[0]
	field := e.Field()
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s: must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s: must not exceed %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, e.Param())
	case "gtefield":
		return fmt.Sprintf("%s: must be at least %s", field, e.Param())
	case "required":
		return fmt.Sprintf("%s: empty entry", field)
	default:
		return fmt.Sprintf("%s: validation failed (%s)", field, e.Tag())
	}
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// RandSeed resolves Seed, drawing one from the clock when it is zero.
func (c Config) RandSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// Rand returns a random source seeded by [Config.RandSeed].
func (c Config) Rand() *rand.Rand {
	return geometry.NewRand(c.RandSeed())
}

func (c Config) Bounds() geometry.Bounds {
	return geometry.Bounds{Width: c.Width, Height: c.Height}
}

func (c Config) Degree() graph.DegreeBounds {
	return graph.DegreeBounds{Min: c.MinOutDegree, Max: c.MaxOutDegree}
}

func (c Config) Style() render.Style {
	return render.Style{NodeSize: c.NodeSize, LabelGap: c.LabelGap}
}

// Generator builds a graph generator drawing from rng.
func (c Config) Generator(rng geometry.Rand) *graph.Generator {
	g := graph.NewGenerator(rng, geometry.Sampler{
		Rand:          rng,
		MinSeparation: c.MinSeparation,
		Attempts:      c.Attempts,
	})
	g.Labels = c.Labels
	g.Degree = c.Degree()
	return g
}
