package transform

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const DefaultSystemPrompt = "You help edit plain-text notes. " +
	"Follow the user's instruction about the note and reply with plain text only."

// Provider names accepted by New.
const (
	ProviderEcho      = "echo"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Options configures an LLM transformer.
type Options struct {
	Provider     string
	Model        string
	Temperature  float64
	SystemPrompt string
}

// LLM asks a langchaingo model to apply the instruction to the note.
type LLM struct {
	client llms.Model
	opts   Options
}

func NewLLM(client llms.Model, opts Options) *LLM {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	return &LLM{client: client, opts: opts}
}

// New builds the transformer named by opts.Provider. An empty provider means
// echo. Network providers read their credentials from the environment
// (OPENAI_API_KEY, ANTHROPIC_API_KEY) the way langchaingo does.
func New(opts Options) (Transformer, error) {
	var (
		client llms.Model
		err    error
	)
	switch strings.ToLower(opts.Provider) {
	case "", ProviderEcho:
		return Echo{}, nil
	case ProviderOpenAI:
		var o []openai.Option
		if opts.Model != "" {
			o = append(o, openai.WithModel(opts.Model))
		}
		client, err = openai.New(o...)
	case ProviderAnthropic:
		var o []anthropic.Option
		if opts.Model != "" {
			o = append(o, anthropic.WithModel(opts.Model))
		}
		client, err = anthropic.New(o...)
	case ProviderOllama:
		model := opts.Model
		if model == "" {
			model = "llama2"
		}
		client, err = ollama.New(ollama.WithModel(model))
	default:
		return nil, fmt.Errorf("transform: unknown provider %q", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("transform: %s: %w", opts.Provider, err)
	}
	return NewLLM(client, opts), nil
}

func (l *LLM) Transform(ctx context.Context, instruction, content string) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, l.opts.SystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt(instruction, content)),
	}

	callOpts := []llms.CallOption{llms.WithTemperature(l.opts.Temperature)}
	if l.opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(l.opts.Model))
	}

	resp, err := l.client.GenerateContent(ctx, msgs, callOpts...)
	if err != nil {
		return "", fmt.Errorf("transform: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}
	out := strings.TrimSpace(resp.Choices[0].Content)
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

func prompt(instruction, content string) string {
	var sb strings.Builder
	sb.WriteString("Instruction: ")
	sb.WriteString(instruction)
	sb.WriteString("\n\nNote:\n")
	sb.WriteString(content)
	return sb.String()
}
