// Package llm is the last-resort extraction tier. It asks a language model
// to list postings found in page content and parses the reply line by line.
package llm

import (
	"context"
	"errors"
)

// ErrDisabled is returned by Noop.
var ErrDisabled = errors.New("llm disabled")

// Completer sends one chat-style prompt and returns the text of the reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Noop is used when no provider is configured.
type Noop struct{}

func (Noop) Complete(ctx context.Context, system, user string) (string, error) {
	return "", ErrDisabled
}
