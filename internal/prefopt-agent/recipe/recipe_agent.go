package recipe_agent

import (
	"fmt"
	"path/filepath"

	"github.com/prefopt-project/prefopt/pkg/afero"
	"github.com/prefopt-project/prefopt/pkg/logging"
	"github.com/prefopt-project/prefopt/pkg/recipe"
)

// RecipeAgent loads a preference-tuning recipe, validates it against the
// rules the training runtime would apply at startup, and optionally renders
// its canonical form back to disk.
type RecipeAgent struct {
	logger logging.Interface
	Config Config
}

// NewRecipeAgent constructs a new recipe agent from the given configuration.
func NewRecipeAgent(config *Config) (*RecipeAgent, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("recipe agent config invalid: %v", err)
	}

	return &RecipeAgent{
		logger: config.AnotherLogger,
		Config: *config,
	}, nil
}

// Start runs the agent once: load, validate, summarize, render.
func (a *RecipeAgent) Start() error {
	a.logger.Infof("Validating recipe %s", a.Config.RecipePath)

	r, err := recipe.Load(a.Config.Fs, a.Config.RecipePath)
	if err != nil {
		return err
	}

	if err := r.Validate(); err != nil {
		return fmt.Errorf("recipe %s failed validation: %w", a.Config.RecipePath, err)
	}

	a.logSummary(r)

	if a.Config.RenderedPath != "" {
		if err := a.render(r); err != nil {
			return err
		}
	}

	return nil
}

// logSummary logs the parameters that decide the shape of the run, the way
// the trainer logs its model/data/training parameters at startup.
func (a *RecipeAgent) logSummary(r *recipe.Recipe) {
	a.logger.Infof("Model: %s (revision %q, attn %s, use_cache %t)",
		r.ModelNameOrPath, r.ModelRevision, r.AttnImplementation(), r.UseCache())

	dtype := "runtime default"
	if r.TorchDtype != nil {
		dtype = string(*r.TorchDtype)
	}
	a.logger.Infof("Precision: torch_dtype=%s bf16=%t", dtype, r.Bf16)

	objective := r.LossType
	if objective == "" {
		objective = recipe.LossSigmoid
	}
	a.logger.Infof("Objective: %s with beta=%g", objective, r.Beta)

	a.logger.Infof("Optimization: lr=%g %s/%s warmup_ratio=%g epochs=%d effective_batch=%d",
		r.LearningRate, r.Optim, r.LRSchedulerType, r.WarmupRatio,
		r.NumTrainEpochs, r.EffectiveBatchSize(1))

	a.logger.Infof("Data: splits=%v max_length=%d max_prompt_length=%d workers=%d",
		r.DatasetSplits, r.MaxLength, r.MaxPromptLength, r.PreprocessingNumWorkers)

	a.logger.Infof("Cadence: eval=%s/%d save=%s/%d (keep %d) logging=%d",
		r.EvaluationStrategy, r.EvalSteps, r.SaveStrategy, r.SaveSteps,
		r.SaveTotalLimit, r.LoggingSteps)

	if r.PushToHub {
		a.logger.Infof("Run %q pushes to hub repository %s", r.RunName, r.HubModelID)
	}
}

func (a *RecipeAgent) render(r *recipe.Recipe) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}

	dir, file := filepath.Split(a.Config.RenderedPath)
	if dir == "" {
		dir = "."
	}
	if err := afero.AtomicFileUpdate(a.Config.Fs, filepath.Clean(dir), file, data, 0o644, a.logger); err != nil {
		return fmt.Errorf("rendering recipe to %s: %w", a.Config.RenderedPath, err)
	}

	a.logger.Infof("Rendered canonical recipe to %s", a.Config.RenderedPath)
	return nil
}
