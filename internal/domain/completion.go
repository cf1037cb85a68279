package domain

import (
	"context"
	"strings"
)

// Completer is the language-model completion contract.
// Implementations must return output parseable as JSON when the request
// demands it; a non-JSON body is a recoverable condition for callers.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a prompt template plus its variable bindings.
type CompletionRequest struct {
	System    string
	Template  string
	Variables map[string]string
}

// Render substitutes {name} placeholders in the template with variable values.
// Unbound placeholders are left intact.
func (r CompletionRequest) Render() string {
	if len(r.Variables) == 0 {
		return r.Template
	}
	pairs := make([]string, 0, len(r.Variables)*2)
	for k, v := range r.Variables {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(r.Template)
}
