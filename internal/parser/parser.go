// Package parser classifies raw model output as either a final answer or a
// tool call.
//
// The accepted tool-call grammar is
//
//	prefix   = { whitespace | letter | digit | mark | "_" }
//	call     = prefix ToolName "(" argument ")" { any }
//	argument = one or more characters other than ")"
//
// ToolName is matched exactly and case-sensitively against the configured
// tool kinds. The argument may span several lines. A response that happens
// to contain the pattern inside a genuine answer is still read as a tool
// call; there is no escaping.
package parser

import (
	"strings"
	"unicode"

	"deepagent/internal/tool"
)

// Decision is either FinalAnswer or ToolCall
type Decision interface {
	decision()
}

// FinalAnswer means the model answered directly
type FinalAnswer struct {
	Text string
}

// ToolCall means the model asked for a tool to be run
type ToolCall struct {
	Call tool.Call
}

func (FinalAnswer) decision() {}
func (ToolCall) decision()    {}

type Parser struct {
	kinds []tool.Kind
}

// New creates a parser that recognizes calls to the given tools.
// With no arguments every known tool kind is accepted.
func New(kinds ...tool.Kind) *Parser {
	if len(kinds) == 0 {
		kinds = tool.Kinds()
	}
	return &Parser{kinds: kinds}
}

// Parse classifies text. It never fails: anything that is not a tool call is
// a final answer.
func (p *Parser) Parse(text string) Decision {
	final := FinalAnswer{Text: strings.TrimSpace(text)}

	// The tool name is made of word characters, so the opening parenthesis
	// must be the first rune outside the prefix alphabet.
	open := strings.IndexFunc(text, func(r rune) bool {
		return !isPrefixRune(r)
	})
	if open < 0 || text[open] != '(' {
		return final
	}

	kind, ok := p.kindSuffix(text[:open])
	if !ok {
		return final
	}

	rest := text[open+1:]
	end := strings.IndexByte(rest, ')')
	if end <= 0 {
		return final
	}

	return ToolCall{Call: tool.Call{
		Kind:     kind,
		Argument: unquote(strings.TrimSpace(rest[:end])),
	}}
}

// kindSuffix finds the longest configured tool name that ends head
func (p *Parser) kindSuffix(head string) (tool.Kind, bool) {
	var best tool.Kind
	for _, k := range p.kinds {
		name := k.String()
		if name == "" || !strings.HasSuffix(head, name) {
			continue
		}
		if len(name) > len(best) {
			best = k
		}
	}
	return best, best != ""
}

func isPrefixRune(r rune) bool {
	return r == '_' || unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// unquote strips one enclosing pair of double quotes
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
