package agent

import (
	"context"
	"errors"
	"time"

	"deepagent/internal/logger"
	"deepagent/internal/tool"
)

// ErrSearchDenied is returned when a before-search hook refuses the search
var ErrSearchDenied = errors.New("search denied")

type Agent interface {
	Name() string
	Run(ctx context.Context, input *Input) (*Output, error)
	Query(ctx context.Context, relatedContent, question string) (string, error)
}

// Input is fixed for the duration of one run
type Input struct {
	Question       string
	RelatedContent string
	Logger         *logger.Logger
}

type Output struct {
	RunID  string
	Result string
	Steps  []Step
}

// Step records the single search round of a run
type Step struct {
	Call        tool.Call
	Observation string
	StartTime   time.Time
	EndTime     time.Time
}

type Config struct {
	// AlwaysSearch skips the first model call and searches the question itself
	AlwaysSearch bool
}
