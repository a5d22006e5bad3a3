package recipe_agent

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/configutils"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

type Config struct {
	AnotherLogger logging.Interface
	Fs            afero.Fs `validate:"required"`

	// RecipePath points at the YAML recipe to load and validate.
	RecipePath string `mapstructure:"recipe_path" validate:"required"`

	// RenderedPath, when set, receives the canonical form of the recipe.
	RenderedPath string `mapstructure:"rendered_path"`
}

// Option represents a recipe agent configuration option.
type Option func(*Config) error

// Apply applies the given options to the configuration.
func (c *Config) Apply(opts ...Option) error {
	for _, o := range opts {
		if o == nil {
			continue
		}

		if err := o(c); err != nil {
			return err
		}
	}
	return nil
}

// NewRecipeAgentConfig builds and returns a new configuration from the given options.
func NewRecipeAgentConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// WithAnotherLog sets the logger for the configuration.
func WithAnotherLog(logger logging.Interface) Option {
	return func(c *Config) error {
		c.AnotherLogger = logger
		return nil
	}
}

// WithFs sets the filesystem the agent reads and writes through.
func WithFs(fs afero.Fs) Option {
	return func(c *Config) error {
		c.Fs = fs
		return nil
	}
}

// WithViper sets the viper for the configuration.
func WithViper(v *viper.Viper) Option {
	return func(c *Config) error {
		if err := configutils.BindEnvsRecursive(v, c, ""); err != nil {
			return fmt.Errorf("error occurred when binding environment variables: %+v", err)
		}

		if err := v.Unmarshal(c); err != nil {
			return fmt.Errorf("error occurred when unmarshalling config: %+v", err)
		}

		return nil
	}
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
