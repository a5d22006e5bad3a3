package recipe

// Default returns a record populated with the consuming framework's
// defaults. Parse decodes on top of this record, so any key absent from the
// document keeps its default.
func Default() *Recipe {
	return &Recipe{
		TorchDtype:              nil, // runtime decides
		DatasetSplits:           []string{"train", "test"},
		PreprocessingNumWorkers: 12,

		LossType: LossSigmoid,
		Beta:     0.01,

		LearningRate:    5.0e-7,
		LRSchedulerType: SchedulerCosine,
		Optim:           OptimAdamWTorch,
		WarmupRatio:     0.1,
		NumTrainEpochs:  1,

		PerDeviceTrainBatchSize:   1,
		PerDeviceEvalBatchSize:    2,
		GradientAccumulationSteps: 16,
		MaxLength:                 1024,
		MaxPromptLength:           512,

		Bf16:                  true,
		GradientCheckpointing: true,
		GradientCheckpointingKwargs: &GradientCheckpointingKwargs{
			UseReentrant: false,
		},

		DoEval:             true,
		EvaluationStrategy: IntervalSteps,
		EvalSteps:          100,
		LoggingSteps:       5,
		SaveStrategy:       IntervalSteps,
		SaveSteps:          100,
		SaveTotalLimit:     1,

		Seed: 42,

		ReportTo: []string{"wandb"},
	}
}
