package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"deepagent/internal/tool"
)

const (
	// RoleNaive is used before any search has run
	RoleNaive = "naive responder"
	// RoleInformed is used once an observation is available
	RoleInformed = "assistant with retrieved context"
)

const agentTemplate = `
You are now the {{.Role}}. There is some known information:
{{.RelatedContent}}
{{.Background}}
{{.QuestionGuide}}: {{.Question}}

{{.AnswerFormat}}
`

var tmpl = template.Must(template.New("agent").Parse(agentTemplate))

// Input is the agent state a prompt is built from
type Input struct {
	RelatedContent string
	Question       string
	// Steps is the number of completed tool rounds (0 or 1)
	Steps int
	// Observation is the text returned by the completed tool round
	Observation string
}

// Prompt holds the filled template slots
type Prompt struct {
	Role           string
	RelatedContent string
	Background     string
	QuestionGuide  string
	Question       string
	AnswerFormat   string
}

// String renders the prompt text sent to the model
func (p Prompt) String() string {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, p); err != nil {
		// Prompt only has string fields; Execute cannot fail on it.
		panic(fmt.Sprintf("render prompt: %v", err))
	}
	return sb.String()
}

type Builder struct {
	tool tool.Kind
}

// NewBuilder creates a builder that tells the model how to call the given tool
func NewBuilder(kind tool.Kind) *Builder {
	return &Builder{tool: kind}
}

// Build fills the template for the current round. Any non-zero step count
// is treated as the post-search round.
func (b *Builder) Build(in Input) Prompt {
	p := Prompt{
		RelatedContent: in.RelatedContent,
		Question:       in.Question,
	}

	if in.Steps == 0 {
		p.Role = RoleNaive
		p.QuestionGuide = "I have a question"
		p.AnswerFormat = b.answerFormat()
		return p
	}

	p.Role = RoleInformed
	p.Background = "\n\nYou also have this known information for reference:\n\n" + in.Observation + "\n"
	p.QuestionGuide = "Please answer my question based on the known information"
	return p
}

func (b *Builder) answerFormat() string {
	return fmt.Sprintf("If you know the answer, please give your answer! "+
		"If you don't know the answer, just answer %s(\"search word\"), "+
		"replacing search word with the keyword you think you need to search for, "+
		"and don't answer anything else.\n\n"+
		"Please answer the question I raised above!", b.tool)
}
