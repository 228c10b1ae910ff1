package browser

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Kind tags an evaluation outcome.
type Kind int

const (
	// None: execution error, thrown exception, undefined, or null.
	None Kind = iota
	// Primitive: the value crossed the boundary intact.
	Primitive
	// Opaque: only a textual description of the value survived.
	Opaque
)

// EvalResult is the tagged outcome of a script evaluation. Callers
// must treat None as a normal outcome, not a failure.
type EvalResult struct {
	Kind        Kind
	Value       any
	Description string
}

// Evaluate executes a script with return-by-value semantics. Anything
// that cannot cross the boundary cleanly degrades: serializable values
// come through as Primitive, values with only a remote description
// become Opaque, and every failure mode collapses to None.
func (p *Page) Evaluate(ctx context.Context, script string) EvalResult {
	resp, err := p.client.Send(ctx, "Runtime.evaluate", map[string]any{
		"expression":    script,
		"returnByValue": true,
	})
	if err != nil {
		p.log.Debug("evaluate failed", zap.Error(err))
		return EvalResult{Kind: None}
	}
	if resp.Error != nil {
		return EvalResult{Kind: None}
	}

	var out struct {
		Result struct {
			Type        string `json:"type"`
			Subtype     string `json:"subtype"`
			Value       any   `json:"value"`
			Description string `json:"description"`
		} `json:"result"`
		ExceptionDetails json.RawMessage `json:"exceptionDetails"`
	}
	if err := resp.Decode(&out); err != nil {
		return EvalResult{Kind: None}
	}
	if len(out.ExceptionDetails) > 0 {
		return EvalResult{Kind: None}
	}

	r := out.Result
	switch {
	case r.Type == "undefined":
		return EvalResult{Kind: None}
	case r.Type == "object" && r.Subtype == "null":
		return EvalResult{Kind: None}
	case r.Value != nil:
		return EvalResult{Kind: Primitive, Value: r.Value}
	case r.Description != "":
		return EvalResult{Kind: Opaque, Description: r.Description}
	default:
		return EvalResult{Kind: None}
	}
}
