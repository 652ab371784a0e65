package transform

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when a backend answers with no text.
var ErrEmptyResponse = errors.New("transform: empty response")

// Transformer derives a string from an instruction and the note content.
type Transformer interface {
	Transform(ctx context.Context, instruction, content string) (string, error)
}

// Func adapts a plain function to Transformer.
type Func func(ctx context.Context, instruction, content string) (string, error)

func (f Func) Transform(ctx context.Context, instruction, content string) (string, error) {
	return f(ctx, instruction, content)
}

// Echo reports what it was asked without contacting anything.
type Echo struct{}

func (Echo) Transform(ctx context.Context, instruction, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Processed instruction: '%s' with context: '%s'", instruction, content), nil
}

// Instruction normalizes user input: surrounding space is trimmed and a
// leading '@' marker is dropped.
func Instruction(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "@")
	return strings.TrimSpace(s)
}
