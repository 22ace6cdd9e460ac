package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"deepagent/internal/hook"
	"deepagent/internal/llm"
	"deepagent/internal/parser"
	"deepagent/internal/prompt"
	"deepagent/internal/tool"

	"github.com/google/uuid"
)

// DeepAgent answers a question with at most one DeepSearch round.
//
// The first model response is parsed: a final answer ends the run, a
// DeepSearch call runs the search once and the model is asked again with
// the observation. The second response is returned verbatim.
type DeepAgent struct {
	generator llm.Generator
	answerer  llm.Generator
	search    tool.Tool
	builder   *prompt.Builder
	parser    *parser.Parser
	hooks     *hook.Manager
	config    Config
}

type Option func(*DeepAgent)

// WithAnswerGenerator uses g for the post-search call, e.g. a streaming generator
func WithAnswerGenerator(g llm.Generator) Option {
	return func(a *DeepAgent) {
		a.answerer = g
	}
}

// WithHooks attaches a hook manager to the run lifecycle
func WithHooks(m *hook.Manager) Option {
	return func(a *DeepAgent) {
		a.hooks = m
	}
}

func NewDeepAgent(gen llm.Generator, search tool.Tool, cfg Config, opts ...Option) *DeepAgent {
	a := &DeepAgent{
		generator: gen,
		answerer:  gen,
		search:    search,
		builder:   prompt.NewBuilder(search.Kind()),
		parser:    parser.New(search.Kind()),
		config:    cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *DeepAgent) Name() string {
	return "deep-search"
}

// Query runs the agent and returns only the final text. The logger, if
// any, is taken from ctx.
func (a *DeepAgent) Query(ctx context.Context, relatedContent, question string) (string, error) {
	out, err := a.Run(ctx, &Input{
		Question:       question,
		RelatedContent: relatedContent,
		Logger:         GetLoggerFromContext(ctx),
	})
	if err != nil {
		return "", err
	}
	return out.Result, nil
}

func (a *DeepAgent) Run(ctx context.Context, input *Input) (*Output, error) {
	execCtx := NewExecutionContext(uuid.NewString(), input.Logger)
	execCtx.Logger.SessionStart(execCtx.RunID, input.Question)

	start := hook.NewHookData(hook.OnAgentStart, "").
		Set(hook.KeyRunID, execCtx.RunID).
		Set(hook.KeyQuestion, input.Question)
	if _, err := a.hooks.Trigger(ctx, start); err != nil {
		return nil, err
	}

	decision, err := a.decide(ctx, execCtx, input)
	if err != nil {
		execCtx.Logger.Error("LLM call failed: %v", err)
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	out := &Output{RunID: execCtx.RunID}

	switch d := decision.(type) {
	case parser.FinalAnswer:
		out.Result = d.Text

	case parser.ToolCall:
		step, err := a.runSearch(ctx, execCtx, input, d.Call)
		if err != nil {
			return nil, err
		}
		out.Steps = []Step{*step}

		p := a.builder.Build(prompt.Input{
			RelatedContent: input.RelatedContent,
			Question:       input.Question,
			Steps:          len(out.Steps),
			Observation:    step.Observation,
		})
		execCtx.LogPrompt("answer", p.String())

		answer, err := a.answerer.Generate(ctx, p.String())
		if err != nil {
			execCtx.Logger.Error("LLM call failed: %v", err)
			return nil, fmt.Errorf("LLM call failed: %w", err)
		}
		out.Result = answer

	default:
		return nil, fmt.Errorf("unexpected decision %T", decision)
	}

	execCtx.LogResponse(out.Result)

	end := hook.NewHookData(hook.OnAgentEnd, "").
		Set(hook.KeyRunID, execCtx.RunID).
		Set(hook.KeyQuestion, input.Question).
		Set(hook.KeyResult, out.Result)
	if _, err := a.hooks.Trigger(ctx, end); err != nil {
		return nil, err
	}

	execCtx.End()
	return out, nil
}

// decide produces the first-round decision, either from the model or, in
// always-search mode, by searching the question directly
func (a *DeepAgent) decide(ctx context.Context, execCtx *ExecutionContext, input *Input) (parser.Decision, error) {
	if a.config.AlwaysSearch {
		execCtx.Logger.Debug("Always-search mode: skipping first model call")
		return parser.ToolCall{Call: tool.Call{Kind: a.search.Kind(), Argument: input.Question}}, nil
	}

	p := a.builder.Build(prompt.Input{
		RelatedContent: input.RelatedContent,
		Question:       input.Question,
	})
	execCtx.LogPrompt("first", p.String())

	text, err := a.generator.Generate(ctx, p.String())
	if err != nil {
		return nil, err
	}
	execCtx.LogModelOutput("first", text)

	return a.parser.Parse(text), nil
}

// runSearch executes the single search round, giving hooks the chance to
// veto or rewrite the query
func (a *DeepAgent) runSearch(ctx context.Context, execCtx *ExecutionContext, input *Input, call tool.Call) (*Step, error) {
	if call.Kind != a.search.Kind() {
		return nil, fmt.Errorf("unknown tool: %s", call.Kind)
	}

	// An empty argument would search for nothing; the question is the
	// closest thing to what the model wanted.
	if strings.TrimSpace(call.Argument) == "" {
		execCtx.Logger.Warn("Empty %s argument, searching the question instead", call.Kind)
		call.Argument = input.Question
	}

	before := hook.NewHookData(hook.BeforeToolExecution, call.Kind.String()).
		Set(hook.KeyRunID, execCtx.RunID).
		Set(hook.KeyArgument, call.Argument)
	feedback, err := a.hooks.Trigger(ctx, before)
	if err != nil {
		return nil, err
	}
	if !feedback.Allow {
		execCtx.Logger.Info("Search denied: %s", feedback.Message)
		if feedback.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrSearchDenied, feedback.Message)
		}
		return nil, ErrSearchDenied
	}
	if q, ok := feedback.Modified.(string); ok && q != "" {
		call.Argument = q
	}

	execCtx.LogToolCall(call.Kind.String(), call.Argument)

	step := &Step{Call: call, StartTime: time.Now()}
	result, err := a.search.Execute(ctx, call.Argument)
	step.EndTime = time.Now()

	after := hook.NewHookData(hook.AfterToolExecution, call.Kind.String()).
		Set(hook.KeyRunID, execCtx.RunID).
		Set(hook.KeyArgument, call.Argument)

	if err != nil {
		execCtx.LogToolResult(call.Kind.String(), false, err.Error(), step.EndTime.Sub(step.StartTime))
		after.Set(hook.KeyError, err.Error())
		if _, hookErr := a.hooks.Trigger(ctx, after); hookErr != nil {
			return nil, errors.Join(err, hookErr)
		}
		return nil, fmt.Errorf("%s failed: %w", call.Kind, err)
	}

	step.Observation = result.Output
	execCtx.LogToolResult(call.Kind.String(), result.Success, result.Output, step.EndTime.Sub(step.StartTime))

	after.Set(hook.KeyOutput, result.Output)
	if _, err := a.hooks.Trigger(ctx, after); err != nil {
		return nil, err
	}

	return step, nil
}

var _ Agent = (*DeepAgent)(nil)
