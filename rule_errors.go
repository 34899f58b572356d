package formstate

import (
	"errors"
	"fmt"
)

// RuleError captures rule-engine metadata alongside the originating error.
type RuleError struct {
	Engine     string
	Expression string
	Err        error
}

func (e *RuleError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("formstate: %s rule %s: %v", e.Engine, describeExpression(e.Expression), e.Err)
}

func (e *RuleError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expression string) string {
	if expression == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expression)
}

func wrapRuleError(engine, expression string, err error) error {
	if err == nil {
		return nil
	}

	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		if ruleErr.Engine == "" {
			ruleErr.Engine = engine
		}
		if ruleErr.Expression == "" {
			ruleErr.Expression = expression
		}
		return ruleErr
	}

	return &RuleError{
		Engine:     engine,
		Expression: expression,
		Err:        err,
	}
}
