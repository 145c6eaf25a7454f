package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/limaJavier/allocation/pkg/annealing"
	"github.com/limaJavier/allocation/pkg/marking"
	"github.com/limaJavier/allocation/pkg/matching"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported configuration format")

var validate = validator.New()

type Matching struct {
	// Randomised runs compared when some students are unranked
	Runs int `mapstructure:"runs" validate:"min=1"`
}

type Marking struct {
	Scores    marking.Scores    `mapstructure:"scores"`
	Annealing annealing.Options `mapstructure:"annealing"`
}

type Config struct {
	// Zero seeds from the clock
	Seed     int64    `mapstructure:"seed"`
	Matching Matching `mapstructure:"matching"`
	Marking  Marking  `mapstructure:"marking"`
}

func Default() Config {
	return Config{
		Seed:     0,
		Matching: Matching{Runs: matching.DefaultRuns},
		Marking: Marking{
			Scores:    marking.DefaultScores(),
			Annealing: annealing.DefaultOptions(),
		},
	}
}

// Reads a YAML (.yaml, .yml) or JSON (.json) file. Keys present in the file override the defaults
func Load(file string) (Config, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	switch extension := strings.ToLower(filepath.Ext(file)); extension {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &raw)
	case ".json":
		err = json.Unmarshal(bytes, &raw)
	default:
		return Config{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, extension)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return Decode(raw)
}

// Overlays raw onto the defaults and validates the result. Unknown keys are rejected
func Decode(raw map[string]any) (Config, error) {
	config := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config Config) Validate() error {
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Randomness for a run: seeded when Seed is set, from the clock otherwise
func (config Config) Source() random.Source {
	if config.Seed == 0 {
		return random.NewTimeSource()
	}
	return random.NewSource(config.Seed)
}
