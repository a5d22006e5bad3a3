package launch_agent

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/configutils"
	"github.com/prefopt-project/prefopt/pkg/logging"
)

const (
	DefaultTestFraction   = 0.1
	DefaultPollInterval   = time.Minute
	DefaultStartupTimeout = 20 * time.Minute
)

type Config struct {
	AnotherLogger logging.Interface
	Fs            afero.Fs `validate:"required"`

	// RecipePath points at the YAML recipe describing the run.
	RecipePath string `mapstructure:"recipe_path" validate:"required"`

	// TrainerEndpoint is the base URL of the training runtime.
	TrainerEndpoint string `mapstructure:"trainer_endpoint" validate:"required,url"`

	// DataPath points at the reflection JSONL file to train on.
	DataPath string `mapstructure:"data_path" validate:"required"`

	// TestFraction is the share of comparisons held out for evaluation.
	TestFraction float64 `mapstructure:"test_fraction" validate:"gte=0,lt=1"`

	// MetricsPath receives the trainer's final metrics document. Empty means
	// <output_dir>/training_metrics.json.
	MetricsPath string `mapstructure:"metrics_path"`

	// PollInterval is how often training status is checked.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// StartupTimeout bounds how long we wait for the trainer to accept the
	// launch request while it is still coming up.
	StartupTimeout time.Duration `mapstructure:"startup_timeout"`
}

// Option represents a launch agent configuration option.
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

// NewLaunchAgentConfig builds and returns a new configuration from the given options.
func NewLaunchAgentConfig(opts ...Option) (*Config, error) {
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

		setDefaults(c)

		return nil
	}
}

func setDefaults(c *Config) {
	if c.TestFraction == 0 {
		c.TestFraction = DefaultTestFraction
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.StartupTimeout == 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
}

func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
