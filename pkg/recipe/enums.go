package recipe

import "fmt"

// TorchDtype is the numeric precision override for model weights. A nil
// *TorchDtype in the record means the runtime decides.
type TorchDtype string

const (
	DtypeAuto     TorchDtype = "auto"
	DtypeBFloat16 TorchDtype = "bfloat16"
	DtypeFloat16  TorchDtype = "float16"
	DtypeFloat32  TorchDtype = "float32"
)

// Validate validates whether this TorchDtype is valid.
func (d TorchDtype) Validate() error {
	switch d {
	case DtypeAuto, DtypeBFloat16, DtypeFloat16, DtypeFloat32:
		return nil
	default:
		return fmt.Errorf("unknown torch_dtype: %s", d)
	}
}

// IntervalStrategy selects when a periodic trainer action (evaluation,
// checkpointing) fires.
type IntervalStrategy string

const (
	IntervalNo    IntervalStrategy = "no"
	IntervalSteps IntervalStrategy = "steps"
	IntervalEpoch IntervalStrategy = "epoch"
)

func (s IntervalStrategy) Validate() error {
	switch s {
	case IntervalNo, IntervalSteps, IntervalEpoch:
		return nil
	default:
		return fmt.Errorf("unknown interval strategy: %s", s)
	}
}

// SchedulerType selects the learning-rate schedule.
type SchedulerType string

const (
	SchedulerLinear             SchedulerType = "linear"
	SchedulerCosine             SchedulerType = "cosine"
	SchedulerCosineWithRestarts SchedulerType = "cosine_with_restarts"
	SchedulerPolynomial         SchedulerType = "polynomial"
	SchedulerConstant           SchedulerType = "constant"
	SchedulerConstantWithWarmup SchedulerType = "constant_with_warmup"
	SchedulerInverseSqrt        SchedulerType = "inverse_sqrt"
)

func (s SchedulerType) Validate() error {
	switch s {
	case SchedulerLinear, SchedulerCosine, SchedulerCosineWithRestarts,
		SchedulerPolynomial, SchedulerConstant, SchedulerConstantWithWarmup,
		SchedulerInverseSqrt:
		return nil
	default:
		return fmt.Errorf("unknown lr_scheduler_type: %s", s)
	}
}

// OptimizerType selects the optimizer implementation.
type OptimizerType string

const (
	OptimAdamWTorch      OptimizerType = "adamw_torch"
	OptimAdamWTorchFused OptimizerType = "adamw_torch_fused"
	OptimAdamWBnb8bit    OptimizerType = "adamw_bnb_8bit"
	OptimPagedAdamW32bit OptimizerType = "paged_adamw_32bit"
	OptimAdafactor       OptimizerType = "adafactor"
	OptimSGD             OptimizerType = "sgd"
	OptimRMSProp         OptimizerType = "rmsprop"
)

func (o OptimizerType) Validate() error {
	switch o {
	case OptimAdamWTorch, OptimAdamWTorchFused, OptimAdamWBnb8bit,
		OptimPagedAdamW32bit, OptimAdafactor, OptimSGD, OptimRMSProp:
		return nil
	default:
		return fmt.Errorf("unknown optim: %s", o)
	}
}

// LossType selects the preference-optimization objective. Empty means the
// runtime default (sigmoid, i.e. vanilla DPO).
type LossType string

const (
	LossSigmoid LossType = "sigmoid"
	LossHinge   LossType = "hinge"
	LossIPO     LossType = "ipo"
	LossSimPO   LossType = "simpo"
)

func (l LossType) Validate() error {
	switch l {
	case "", LossSigmoid, LossHinge, LossIPO, LossSimPO:
		return nil
	default:
		return fmt.Errorf("unknown loss_type: %s", l)
	}
}

// knownReportSinks is the set of telemetry sinks the consuming framework
// understands.
var knownReportSinks = map[string]struct{}{
	"wandb":       {},
	"tensorboard": {},
	"mlflow":      {},
	"comet_ml":    {},
	"none":        {},
}
