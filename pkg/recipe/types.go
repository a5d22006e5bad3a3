// Package recipe holds the declarative configuration record for a
// preference-optimization fine-tuning run (DPO and its reference-free
// variants). The record is read once at job startup and is immutable
// afterwards; everything that executes — the optimizer, the loss, the data
// pipeline, the chat-template renderer — lives in the external training
// runtime that consumes it.
package recipe

import "strings"

// GradientCheckpointingKwargs carries the keyword arguments forwarded to the
// runtime's gradient checkpointing implementation.
type GradientCheckpointingKwargs struct {
	UseReentrant bool `yaml:"use_reentrant" json:"use_reentrant"`
}

// Recipe is the flat configuration record consumed by the external trainer.
//
// Field order here is canonical: Marshal emits fields in declaration order,
// so a rendered recipe always reads model, data, then training knobs.
//
// Fields whose Default() value is non-zero must not carry omitempty:
// Parse decodes on top of Default(), so omitting such a field from the
// canonical form would resurrect the default on re-parse.
type Recipe struct {
	// Model
	ModelNameOrPath string      `yaml:"model_name_or_path" json:"model_name_or_path" validate:"required"`
	ModelRevision   string      `yaml:"model_revision,omitempty" json:"model_revision,omitempty"`
	TorchDtype      *TorchDtype `yaml:"torch_dtype" json:"torch_dtype"`
	TrustRemoteCode bool        `yaml:"trust_remote_code,omitempty" json:"trust_remote_code,omitempty"`

	// Data
	ChatTemplate            string   `yaml:"chat_template,omitempty" json:"chat_template,omitempty"`
	DatasetSplits           []string `yaml:"dataset_splits" json:"dataset_splits" validate:"min=1,unique"`
	PreprocessingNumWorkers int      `yaml:"preprocessing_num_workers" json:"preprocessing_num_workers" validate:"gte=1"`

	// Objective
	LossType LossType `yaml:"loss_type" json:"loss_type"`
	Beta     float64  `yaml:"beta" json:"beta" validate:"gt=0"`

	// Optimization
	LearningRate    float64       `yaml:"learning_rate" json:"learning_rate" validate:"gt=0"`
	LRSchedulerType SchedulerType `yaml:"lr_scheduler_type" json:"lr_scheduler_type"`
	Optim           OptimizerType `yaml:"optim" json:"optim"`
	WarmupRatio     float64       `yaml:"warmup_ratio" json:"warmup_ratio" validate:"gte=0,lte=1"`
	NumTrainEpochs  int           `yaml:"num_train_epochs" json:"num_train_epochs" validate:"gte=1"`

	// Batching and lengths
	PerDeviceTrainBatchSize   int `yaml:"per_device_train_batch_size" json:"per_device_train_batch_size" validate:"gte=1"`
	PerDeviceEvalBatchSize    int `yaml:"per_device_eval_batch_size" json:"per_device_eval_batch_size" validate:"gte=1"`
	GradientAccumulationSteps int `yaml:"gradient_accumulation_steps" json:"gradient_accumulation_steps" validate:"gte=1"`
	MaxLength                 int `yaml:"max_length" json:"max_length" validate:"gte=1"`
	MaxPromptLength           int `yaml:"max_prompt_length" json:"max_prompt_length" validate:"gte=1"`

	// Precision and memory
	Bf16                        bool                         `yaml:"bf16" json:"bf16"`
	GradientCheckpointing       bool                         `yaml:"gradient_checkpointing" json:"gradient_checkpointing"`
	GradientCheckpointingKwargs *GradientCheckpointingKwargs `yaml:"gradient_checkpointing_kwargs" json:"gradient_checkpointing_kwargs,omitempty"`

	// Cadence
	DoEval             bool             `yaml:"do_eval" json:"do_eval"`
	EvaluationStrategy IntervalStrategy `yaml:"evaluation_strategy" json:"evaluation_strategy"`
	EvalSteps          int              `yaml:"eval_steps" json:"eval_steps"`
	LoggingSteps       int              `yaml:"logging_steps" json:"logging_steps" validate:"gte=1"`
	SaveStrategy       IntervalStrategy `yaml:"save_strategy" json:"save_strategy"`
	SaveSteps          int              `yaml:"save_steps" json:"save_steps"`
	SaveTotalLimit     int              `yaml:"save_total_limit" json:"save_total_limit" validate:"gte=1"`

	// Resumption
	ResumeFromCheckpoint *string `yaml:"resume_from_checkpoint,omitempty" json:"resume_from_checkpoint,omitempty"`
	Seed                 int     `yaml:"seed" json:"seed" validate:"gte=0"`

	// Naming and outputs
	OutputDir  string   `yaml:"output_dir" json:"output_dir" validate:"required"`
	RunName    string   `yaml:"run_name,omitempty" json:"run_name,omitempty"`
	PushToHub  bool     `yaml:"push_to_hub" json:"push_to_hub"`
	HubModelID string   `yaml:"hub_model_id,omitempty" json:"hub_model_id,omitempty"`
	ReportTo   []string `yaml:"report_to" json:"report_to"`
}

// UseCache reports whether the runtime may keep the KV cache enabled while
// loading the model. Gradient checkpointing and the cache are mutually
// exclusive in the consuming framework.
func (r *Recipe) UseCache() bool {
	return !r.GradientCheckpointing
}

// AttnImplementation selects the attention kernel the runtime should load
// the model with. The gemma family does not support flash attention.
func (r *Recipe) AttnImplementation() string {
	if strings.Contains(strings.ToLower(r.ModelNameOrPath), "gemma") {
		return "eager"
	}
	return "flash_attention_2"
}

// EffectiveBatchSize returns the number of comparisons per optimizer step
// across worldSize devices.
func (r *Recipe) EffectiveBatchSize(worldSize int) int {
	if worldSize < 1 {
		worldSize = 1
	}
	return r.PerDeviceTrainBatchSize * r.GradientAccumulationSteps * worldSize
}
