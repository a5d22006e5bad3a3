package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

// hubModelIDPattern matches "namespace/name" hub repository identifiers.
var hubModelIDPattern = regexp.MustCompile(`^[A-Za-z0-9][\w.\-]*/[\w.\-]+$`)

// Validate checks type/range validity of every field plus the cross-field
// rules the consuming framework enforces at load time. All failures are
// reported together rather than one at a time.
func (r *Recipe) Validate() error {
	var result *multierror.Error

	if err := validator.New().Struct(r); err != nil {
		result = multierror.Append(result, err)
	}

	if r.TorchDtype != nil {
		if err := r.TorchDtype.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := r.LossType.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := r.LRSchedulerType.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := r.Optim.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := r.EvaluationStrategy.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("evaluation_strategy: %w", err))
	}
	if err := r.SaveStrategy.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("save_strategy: %w", err))
	}

	if r.Bf16 && r.TorchDtype != nil && *r.TorchDtype == DtypeFloat16 {
		result = multierror.Append(result,
			fmt.Errorf("bf16 is enabled but torch_dtype is %s", DtypeFloat16))
	}

	if r.MaxPromptLength >= r.MaxLength {
		result = multierror.Append(result,
			fmt.Errorf("max_prompt_length (%d) must be smaller than max_length (%d)",
				r.MaxPromptLength, r.MaxLength))
	}

	if r.EvaluationStrategy == IntervalSteps && r.EvalSteps < 1 {
		result = multierror.Append(result,
			fmt.Errorf("evaluation_strategy is %q but eval_steps is %d", IntervalSteps, r.EvalSteps))
	}
	if r.SaveStrategy == IntervalSteps && r.SaveSteps < 1 {
		result = multierror.Append(result,
			fmt.Errorf("save_strategy is %q but save_steps is %d", IntervalSteps, r.SaveSteps))
	}

	if r.DoEval != (r.EvaluationStrategy != IntervalNo) {
		result = multierror.Append(result,
			fmt.Errorf("do_eval=%t does not agree with evaluation_strategy=%q",
				r.DoEval, r.EvaluationStrategy))
	}

	if r.PushToHub && !hubModelIDPattern.MatchString(r.HubModelID) {
		result = multierror.Append(result,
			fmt.Errorf("push_to_hub requires hub_model_id of the form namespace/name, got %q", r.HubModelID))
	}

	result = multierror.Append(result, r.validateReportTo()...)

	if err := checkTemplateDelimiters(r.ChatTemplate); err != nil {
		result = multierror.Append(result, fmt.Errorf("chat_template: %w", err))
	}

	return result.ErrorOrNil()
}

func (r *Recipe) validateReportTo() []error {
	var errs []error

	seen := make(map[string]struct{}, len(r.ReportTo))
	for _, sink := range r.ReportTo {
		if _, ok := knownReportSinks[sink]; !ok {
			errs = append(errs, fmt.Errorf("unknown report_to sink: %s", sink))
			continue
		}
		if _, dup := seen[sink]; dup {
			errs = append(errs, fmt.Errorf("duplicate report_to sink: %s", sink))
		}
		seen[sink] = struct{}{}
	}

	if _, ok := seen["none"]; ok && len(r.ReportTo) > 1 {
		errs = append(errs, fmt.Errorf("report_to \"none\" cannot be combined with other sinks"))
	}

	return errs
}

// checkTemplateDelimiters is a purely structural sanity check on the chat
// template source: every {{ / {% opener must be closed before the next one
// opens. Rendering the template stays with the external templating engine.
func checkTemplateDelimiters(tmpl string) error {
	if tmpl == "" {
		return nil
	}

	rest := tmpl
	for {
		exprOpen := strings.Index(rest, "{{")
		stmtOpen := strings.Index(rest, "{%")
		if exprOpen == -1 && stmtOpen == -1 {
			return nil
		}

		open, closer := exprOpen, "}}"
		if exprOpen == -1 || (stmtOpen != -1 && stmtOpen < exprOpen) {
			open, closer = stmtOpen, "%}"
		}

		inner := rest[open+2:]
		end := strings.Index(inner, closer)
		if end == -1 {
			return fmt.Errorf("unclosed %s delimiter", rest[open:open+2])
		}

		// delimiters never nest
		for _, opener := range []string{"{{", "{%"} {
			if next := strings.Index(inner, opener); next != -1 && next < end {
				return fmt.Errorf("%s delimiter opened before the previous %s closes",
					opener, rest[open:open+2])
			}
		}

		rest = inner[end+2:]
	}
}
