// Package markdown converts a small line-oriented markdown subset to HTML.
//
// Conversion is driven by a finite state machine: every input line is
// tokenized, classified into a LineSignal, and looked up in a fixed
// transition table keyed by (BlockState, LineSignal). The matched entry
// names the next state and the ordered actions that emit HTML for the line.
// Lines without a table entry are continuations and are echoed as text.
package markdown

import "fmt"

// BlockState is the block the parser is currently inside.
type BlockState int

const (
	StateInitial BlockState = iota
	StateDefault
	// StateHeading is never a resting state; heading transitions land in StateDefault.
	StateHeading
	StateParagraph
	StateUnorderedList
	StateOrderedList
)

var blockStateNames = map[BlockState]string{
	StateInitial:       "initial",
	StateDefault:       "default",
	StateHeading:       "heading",
	StateParagraph:     "paragraph",
	StateUnorderedList: "unordered_list",
	StateOrderedList:   "ordered_list",
}

func (s BlockState) String() string {
	if name, ok := blockStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// LineSignal classifies a single input line. It is derived per line and never stored.
type LineSignal int

const (
	SignalHeading LineSignal = iota + 1
	SignalListBullet
	SignalOtherText
	SignalOrderedMarker
	SignalEmptyLine
)

var lineSignalNames = map[LineSignal]string{
	SignalHeading:       "heading",
	SignalListBullet:    "list_bullet",
	SignalOtherText:     "other_text",
	SignalOrderedMarker: "ordered_marker",
	SignalEmptyLine:     "empty_line",
}

func (s LineSignal) String() string {
	if name, ok := lineSignalNames[s]; ok {
		return name
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// AllStates lists every BlockState in declaration order.
func AllStates() []BlockState {
	return []BlockState{
		StateInitial,
		StateDefault,
		StateHeading,
		StateParagraph,
		StateUnorderedList,
		StateOrderedList,
	}
}

// AllSignals lists every LineSignal in classification priority order.
func AllSignals() []LineSignal {
	return []LineSignal{
		SignalEmptyLine,
		SignalHeading,
		SignalListBullet,
		SignalOrderedMarker,
		SignalOtherText,
	}
}
