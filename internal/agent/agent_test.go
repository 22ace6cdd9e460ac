package agent

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"deepagent/internal/hook"
	"deepagent/internal/hook/handlers"
	"deepagent/internal/logger"
	"deepagent/internal/prompt"
	"deepagent/internal/tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM returns canned responses in order and records every prompt
type scriptedLLM struct {
	responses []string
	err       error
	prompts   []string
}

func (s *scriptedLLM) Generate(ctx context.Context, p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if s.err != nil {
		return "", s.err
	}
	if len(s.prompts) > len(s.responses) {
		return "", errors.New("scriptedLLM: no more responses")
	}
	return s.responses[len(s.prompts)-1], nil
}

type recordingSearcher struct {
	output  string
	err     error
	queries []string
}

func (r *recordingSearcher) Search(ctx context.Context, query string) (string, error) {
	r.queries = append(r.queries, query)
	return r.output, r.err
}

func TestDeepAgent_SearchThenAnswer(t *testing.T) {
	gen := &scriptedLLM{responses: []string{
		`DeepSearch("Elon Musk news")`,
		"Musk recently announced X.",
	}}
	searcher := &recordingSearcher{output: "Musk announced X"}
	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{})

	out, err := a.Run(context.Background(), &Input{Question: "What's new with Elon Musk?"})
	require.NoError(t, err)

	assert.Equal(t, "Musk recently announced X.", out.Result)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, []string{"Elon Musk news"}, searcher.queries)

	require.Len(t, out.Steps, 1)
	assert.Equal(t, tool.Call{Kind: tool.DeepSearch, Argument: "Elon Musk news"}, out.Steps[0].Call)
	assert.Equal(t, "Musk announced X", out.Steps[0].Observation)

	require.Len(t, gen.prompts, 2)
	assert.Contains(t, gen.prompts[0], prompt.RoleNaive)
	assert.Contains(t, gen.prompts[0], `DeepSearch("search word")`)
	assert.Contains(t, gen.prompts[1], prompt.RoleInformed)
	assert.Contains(t, gen.prompts[1], "Musk announced X")
	assert.Contains(t, gen.prompts[1], "What's new with Elon Musk?")
}

func TestDeepAgent_SecondResponseIsNotParsed(t *testing.T) {
	gen := &scriptedLLM{responses: []string{
		"DeepSearch(tesla stock)",
		"  DeepSearch(again)  ",
	}}
	searcher := &recordingSearcher{output: "TSLA up"}
	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{})

	answer, err := a.Query(context.Background(), "", "How is Tesla doing?")
	require.NoError(t, err)

	assert.Equal(t, "  DeepSearch(again)  ", answer)
	assert.Equal(t, []string{"tesla stock"}, searcher.queries)
}

func TestDeepAgent_DirectAnswer(t *testing.T) {
	gen := &scriptedLLM{responses: []string{"  Paris is the capital of France.\n"}}
	searcher := &recordingSearcher{}
	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{})

	out, err := a.Run(context.Background(), &Input{
		Question:       "What is the capital of France?",
		RelatedContent: "France is a country in Europe.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Paris is the capital of France.", out.Result)
	assert.Empty(t, out.Steps)
	assert.Empty(t, searcher.queries)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "France is a country in Europe.")
}

func TestDeepAgent_AlwaysSearch(t *testing.T) {
	gen := &scriptedLLM{responses: []string{"answer from context"}}
	searcher := &recordingSearcher{output: "observation"}
	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{AlwaysSearch: true})

	answer, err := a.Query(context.Background(), "", "latest Go release")
	require.NoError(t, err)

	assert.Equal(t, "answer from context", answer)
	assert.Equal(t, []string{"latest Go release"}, searcher.queries)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "observation")
}

func TestDeepAgent_EmptyArgumentFallsBackToQuestion(t *testing.T) {
	gen := &scriptedLLM{responses: []string{`DeepSearch("   ")`, "done"}}
	searcher := &recordingSearcher{output: "obs"}
	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{})

	_, err := a.Query(context.Background(), "", "who won the match")
	require.NoError(t, err)
	assert.Equal(t, []string{"who won the match"}, searcher.queries)
}

func TestDeepAgent_AnswerGenerator(t *testing.T) {
	gen := &scriptedLLM{responses: []string{`DeepSearch("q")`}}
	answerer := &scriptedLLM{responses: []string{"streamed answer"}}
	a := NewDeepAgent(gen, tool.NewSearchTool(&recordingSearcher{output: "obs"}), Config{},
		WithAnswerGenerator(answerer))

	answer, err := a.Query(context.Background(), "", "question")
	require.NoError(t, err)

	assert.Equal(t, "streamed answer", answer)
	assert.Len(t, gen.prompts, 1)
	assert.Len(t, answerer.prompts, 1)
}

func TestDeepAgent_ErrorsPropagate(t *testing.T) {
	modelErr := errors.New("model unavailable")
	a := NewDeepAgent(&scriptedLLM{err: modelErr}, tool.NewSearchTool(&recordingSearcher{}), Config{})
	_, err := a.Query(context.Background(), "", "q")
	assert.ErrorIs(t, err, modelErr)

	searchErr := errors.New("search backend down")
	gen := &scriptedLLM{responses: []string{`DeepSearch("x")`}}
	a = NewDeepAgent(gen, tool.NewSearchTool(&recordingSearcher{err: searchErr}), Config{})
	_, err = a.Query(context.Background(), "", "q")
	assert.ErrorIs(t, err, searchErr)
	assert.Len(t, gen.prompts, 1, "no second model call after a failed search")
}

func TestDeepAgent_HookDeny(t *testing.T) {
	gen := &scriptedLLM{responses: []string{`DeepSearch("secret")`}}
	searcher := &recordingSearcher{}

	hooks := hook.NewManager()
	hooks.Register(handlers.NewSearchConfirmHandlerWithIO(strings.NewReader("n\n"), &bytes.Buffer{}))

	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{}, WithHooks(hooks))
	_, err := a.Query(context.Background(), "", "q")

	assert.ErrorIs(t, err, ErrSearchDenied)
	assert.Empty(t, searcher.queries)
}

func TestDeepAgent_HookEditsQuery(t *testing.T) {
	gen := &scriptedLLM{responses: []string{`DeepSearch("musk")`, "ok"}}
	searcher := &recordingSearcher{output: "obs"}

	hooks := hook.NewManager()
	hooks.Register(handlers.NewSearchConfirmHandlerWithIO(strings.NewReader("e\nElon Musk news 2024\n"), &bytes.Buffer{}))

	a := NewDeepAgent(gen, tool.NewSearchTool(searcher), Config{}, WithHooks(hooks))
	out, err := a.Run(context.Background(), &Input{Question: "q"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Elon Musk news 2024"}, searcher.queries)
	assert.Equal(t, "Elon Musk news 2024", out.Steps[0].Call.Argument)
}

func TestDeepAgent_LoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&buf, logger.LevelInfo)
	log.SetColorMode(false)

	gen := &scriptedLLM{responses: []string{`DeepSearch("go 1.24")`, "Go 1.24 shipped."}}
	a := NewDeepAgent(gen, tool.NewSearchTool(&recordingSearcher{output: "release notes"}), Config{})

	_, err := a.Query(WithLogger(context.Background(), log), "", "What is new in Go?")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Run Started")
	assert.Contains(t, out, "Tool Call: DeepSearch")
	assert.Contains(t, out, "Searches: 1")
}
