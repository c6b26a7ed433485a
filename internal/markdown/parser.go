package markdown

import "strings"

// Step describes what the parser did with one line.
type Step struct {
	From    BlockState
	To      BlockState
	Signal  LineSignal
	Matched bool // false when the line fell through to the continuation rule
	Actions []Action
	Output  string
}

// Parser converts a document one line at a time. The only state carried
// between lines is the current BlockState. A Parser must not be shared
// between goroutines.
type Parser struct {
	state BlockState
	buf   strings.Builder
}

// NewParser returns a parser in StateInitial.
func NewParser() *Parser {
	return &Parser{state: StateInitial}
}

// State returns the current block state.
func (p *Parser) State() BlockState {
	return p.state
}

// Reset returns the parser to StateInitial so it can convert another document.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.buf.Reset()
}

// ParseLine consumes one line (with or without its terminator) and returns
// the HTML emitted for it.
func (p *Parser) ParseLine(line string) string {
	return p.Step(line).Output
}

// Step consumes one line and reports the transition taken along with the
// emitted HTML.
func (p *Parser) Step(line string) Step {
	p.buf.Reset()

	tokens := Tokenize(line)
	signal := Classify(tokens)
	step := Step{From: p.state, To: p.state, Signal: signal}

	tr, ok := Lookup(p.state, signal)
	if !ok {
		p.writeContinuation(tokens)
		step.Output = p.buf.String()
		return step
	}

	p.state = tr.Next
	step.To = tr.Next
	step.Matched = true
	step.Actions = tr.Actions

	if len(tr.Actions) == 0 {
		// Entries without actions still render the line as plain text.
		p.writeContinuation(tokens)
	}
	for _, action := range tr.Actions {
		action.Apply(&p.buf, tokens)
		p.buf.WriteByte('\n')
	}
	step.Output = p.buf.String()
	return step
}

func (p *Parser) writeContinuation(tokens []string) {
	p.buf.WriteString(joinTokens(tokens))
	p.buf.WriteByte('\n')
}

// Convert runs every line through a fresh parser and concatenates the output.
func Convert(lines []string) string {
	p := NewParser()
	var out strings.Builder
	for _, line := range lines {
		out.WriteString(p.ParseLine(line))
	}
	return out.String()
}
