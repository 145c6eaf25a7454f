package annealing

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Cooling schedule of the search. Alpha below 1 and a positive minimum temperature keep the number of levels finite
type Options struct {
	InitialTemp float64 `mapstructure:"initialTemp" validate:"gt=0"`
	Alpha       float64 `mapstructure:"alpha" validate:"gt=0,lt=1"`
	MinTemp     float64 `mapstructure:"minTemp" validate:"gt=0"`
	Iterations  int     `mapstructure:"iterations" validate:"min=1"`
}

func DefaultOptions() Options {
	return Options{
		InitialTemp: 1000,
		Alpha:       0.98,
		MinTemp:     1,
		Iterations:  20,
	}
}

func (options Options) Validate() error {
	if err := validate.Struct(options); err != nil {
		return fmt.Errorf("invalid annealing options: %w", err)
	}
	return nil
}

// Returns how many temperature levels the schedule visits
func (options Options) Levels() int {
	levels := 0
	for temperature := options.InitialTemp; temperature > options.MinTemp; temperature *= options.Alpha {
		levels++
	}
	return levels
}
