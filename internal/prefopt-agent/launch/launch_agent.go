package launch_agent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
	"github.com/prefopt-project/prefopt/pkg/preference"
	"github.com/prefopt-project/prefopt/pkg/recipe"
)

// LaunchAgent ships a validated recipe and its preference data to the
// external training runtime, watches the run, and collects the final
// metrics.
type LaunchAgent struct {
	logger logging.Interface
	Config Config
	Client TrainerClient
}

// NewLaunchAgent constructs a new launch agent from the given configuration.
func NewLaunchAgent(config *Config) (*LaunchAgent, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("launch agent config invalid: %v", err)
	}

	return &LaunchAgent{
		logger: config.AnotherLogger,
		Config: *config,
		Client: NewTrainerClient(config.TrainerEndpoint),
	}, nil
}

// Start drives one training run end to end.
func (a *LaunchAgent) Start() error {
	ctx := context.Background()

	r, err := a.prepareRecipe()
	if err != nil {
		return err
	}

	payload, err := a.prepareData(r)
	if err != nil {
		return err
	}

	defer a.terminate(ctx)

	if err := a.launch(ctx, payload); err != nil {
		return err
	}

	if err := a.watch(ctx); err != nil {
		return err
	}

	return a.collectMetrics(ctx, r)
}

func (a *LaunchAgent) prepareRecipe() (*recipe.Recipe, error) {
	r, err := recipe.Load(a.Config.Fs, a.Config.RecipePath)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("recipe %s failed validation: %w", a.Config.RecipePath, err)
	}

	if r.ResumeFromCheckpoint == nil {
		ckpt, ok, err := LatestCheckpoint(a.Config.Fs, r.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("scanning %s for checkpoints: %w", r.OutputDir, err)
		}
		if ok {
			a.logger.Infof("Checkpoint detected, resuming training at %s", ckpt)
			r.ResumeFromCheckpoint = &ckpt
		}
	} else {
		a.logger.Infof("Resuming training from configured checkpoint %s", *r.ResumeFromCheckpoint)
	}

	return r, nil
}

func (a *LaunchAgent) prepareData(r *recipe.Recipe) (LaunchPayload, error) {
	a.logger.Infof("Reading preference data from %s", a.Config.DataPath)

	comparisons, err := preference.ReadJSONL(a.Config.Fs, a.Config.DataPath)
	if err != nil {
		return LaunchPayload{}, err
	}

	train, test, err := preference.Split(comparisons, a.Config.TestFraction, int64(r.Seed))
	if err != nil {
		return LaunchPayload{}, fmt.Errorf("splitting preference data: %w", err)
	}

	a.logger.Infof("Training on the following splits: train : %d, test : %d", len(train), len(test))

	return LaunchPayload{Recipe: r, Train: train, Test: test}, nil
}

// launch posts the payload, retrying while the trainer is still coming up.
func (a *LaunchAgent) launch(ctx context.Context, payload LaunchPayload) error {
	a.logger.Infof("Kicking off training on endpoint: %s", a.Config.TrainerEndpoint)

	startTime := time.Now()
	for {
		err := a.Client.PostTrain(ctx, payload)
		if err == nil {
			a.logger.Info("Trainer accepted the launch request")
			return nil
		}

		var dataErr *DataError
		if errors.As(err, &dataErr) {
			// data errors never succeed on retry
			a.logger.Errorf("Data error detected from training runtime: %s", dataErr.Message)
			return err
		}

		if time.Since(startTime) > a.Config.StartupTimeout {
			return fmt.Errorf("trainer did not accept the launch request within %s: %w",
				a.Config.StartupTimeout, err)
		}

		a.logger.Infof("Trainer is starting, checking again in %s...", a.Config.PollInterval)
		time.Sleep(a.Config.PollInterval)
	}
}

func (a *LaunchAgent) watch(ctx context.Context) error {
	for {
		status, err := a.Client.GetStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to call /status: %w", err)
		}

		switch status.Status {
		case StatusFinished:
			a.logger.Info("Status: Finished")
			return nil
		case StatusPending, StatusRunning:
			a.logger.Infof("Status: %s. Checking again in %s...", status.Status, a.Config.PollInterval)
		case StatusFailed:
			return fmt.Errorf("training failed: %s", status.Message)
		default:
			return fmt.Errorf("unknown trainer status %q: %s", status.Status, status.Message)
		}

		time.Sleep(a.Config.PollInterval)
	}
}

func (a *LaunchAgent) collectMetrics(ctx context.Context, r *recipe.Recipe) error {
	metrics, err := a.Client.GetMetrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to call /metrics: %w", err)
	}

	metricsPath := a.Config.MetricsPath
	if metricsPath == "" {
		metricsPath = filepath.Join(r.OutputDir, "training_metrics.json")
	}

	dir, file := filepath.Split(metricsPath)
	if dir == "" {
		dir = "."
	}
	if err := afero.AtomicFileUpdate(a.Config.Fs, filepath.Clean(dir), file, metrics, 0o644, a.logger); err != nil {
		return fmt.Errorf("unable to write metrics JSON to %s: %w", metricsPath, err)
	}

	a.logger.Infof("Successfully wrote metrics JSON to file %s", metricsPath)
	return nil
}

func (a *LaunchAgent) terminate(ctx context.Context) {
	if err := a.Client.PostTerminate(ctx); err != nil {
		a.logger.Warnf("failed to call /terminate: %+v", err)
		return
	}
	a.logger.Info("Training instance terminated")
}
