package formstate

import "errors"

// ErrNoRuleEvaluator indicates a rule validation was built without an engine.
var ErrNoRuleEvaluator = errors.New("formstate: rule evaluator not configured")

// RuleContext carries the inputs a rule expression evaluates against.
type RuleContext struct {
	Value          any
	FormattedValue any
	// Values is the flattened form value tree, for cross-field rules.
	Values map[string]any
	Args   map[string]any
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Values == nil {
		ctx.Values = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

// RuleEvaluator executes validation expressions against a rule context.
type RuleEvaluator interface {
	Evaluate(ctx RuleContext, expression string) (any, error)
	Compile(expression string) (CompiledRule, error)
}

// CompiledRule is a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// ProgramCache stores compiled expression programs keyed by expression
// strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// NewRuleValidation compiles expression on the given engine and wraps it as
// a field validation. The rule passes only when it evaluates to boolean
// true; evaluation errors count as failures so a broken rule surfaces as a
// validation message rather than a fault.
func NewRuleValidation(evaluator RuleEvaluator, expression, message string) (Validation, error) {
	if evaluator == nil {
		return Validation{}, ErrNoRuleEvaluator
	}
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return Validation{}, err
	}
	return Validation{
		Message: message,
		Handler: func(value, formattedValue any) bool {
			result, err := rule.Evaluate(RuleContext{
				Value:          value,
				FormattedValue: formattedValue,
			})
			if err != nil {
				return false
			}
			passed, ok := result.(bool)
			return ok && passed
		},
	}, nil
}

// NewRuleRequiredCheck compiles expression as a required check: the field
// counts as filled when the rule evaluates to true.
func NewRuleRequiredCheck(evaluator RuleEvaluator, expression, message string) (*RequiredCheck, error) {
	validation, err := NewRuleValidation(evaluator, expression, message)
	if err != nil {
		return nil, err
	}
	return &RequiredCheck{
		Message: message,
		Check: func(value any) bool {
			return validation.Handler(value, value)
		},
	}, nil
}
