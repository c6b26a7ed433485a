package markdown

import "slices"

// Transition is the outcome of a table hit: the next state and the actions
// to run, in order.
type Transition struct {
	Next    BlockState
	Actions []Action
}

type transitionKey struct {
	state  BlockState
	signal LineSignal
}

// table holds every defined (state, signal) pair. Missing pairs are
// continuations handled by the parser, not errors.
//
// From StateInitial a bullet or plain text line opens no tag, unlike the
// same signals from StateDefault. This is kept as-is.
var table = map[transitionKey]Transition{
	{StateInitial, SignalHeading}:       {StateDefault, []Action{ActionEmitHeading}},
	{StateInitial, SignalListBullet}:    {StateUnorderedList, nil},
	{StateInitial, SignalOtherText}:     {StateParagraph, nil},
	{StateInitial, SignalOrderedMarker}: {StateOrderedList, []Action{ActionOpenOrderedList, ActionOpenListItem}},

	{StateDefault, SignalHeading}:       {StateDefault, []Action{ActionEmitHeading}},
	{StateDefault, SignalListBullet}:    {StateUnorderedList, []Action{ActionOpenUnorderedList}},
	{StateDefault, SignalOtherText}:     {StateParagraph, []Action{ActionOpenParagraph}},
	{StateDefault, SignalOrderedMarker}: {StateOrderedList, []Action{ActionOpenOrderedList, ActionOpenListItem}},

	{StateParagraph, SignalEmptyLine}: {StateDefault, []Action{ActionCloseParagraph}},
	{StateParagraph, SignalListBullet}: {StateUnorderedList, []Action{
		ActionCloseParagraph, ActionOpenUnorderedList, ActionOpenListItem,
	}},
	{StateParagraph, SignalOrderedMarker}: {StateOrderedList, []Action{
		ActionCloseParagraph, ActionOpenOrderedList, ActionOpenListItem,
	}},
	{StateParagraph, SignalHeading}: {StateDefault, []Action{ActionCloseParagraph, ActionEmitHeading}},

	{StateUnorderedList, SignalEmptyLine}: {StateDefault, []Action{
		ActionCloseListItem, ActionCloseUnorderedList,
	}},
	{StateUnorderedList, SignalListBullet}: {StateUnorderedList, []Action{
		ActionCloseListItem, ActionOpenListItem,
	}},
	{StateUnorderedList, SignalOrderedMarker}: {StateOrderedList, []Action{
		ActionCloseListItem, ActionCloseUnorderedList, ActionOpenOrderedList, ActionOpenListItem,
	}},

	{StateOrderedList, SignalOrderedMarker}: {StateOrderedList, []Action{
		ActionCloseListItem, ActionOpenListItem,
	}},
	{StateOrderedList, SignalEmptyLine}: {StateDefault, []Action{
		ActionCloseListItem, ActionCloseOrderedList,
	}},
	{StateOrderedList, SignalListBullet}: {StateUnorderedList, []Action{
		ActionCloseListItem, ActionCloseOrderedList, ActionOpenUnorderedList, ActionOpenListItem,
	}},
}

// Lookup returns the transition for (state, signal). ok is false when the
// pair has no entry and the line is a continuation.
func Lookup(state BlockState, signal LineSignal) (Transition, bool) {
	tr, ok := table[transitionKey{state, signal}]
	if !ok {
		return Transition{}, false
	}
	return Transition{Next: tr.Next, Actions: slices.Clone(tr.Actions)}, true
}

// TableEntry is one row of the transition table.
type TableEntry struct {
	From       BlockState
	Signal     LineSignal
	Transition Transition
}

// Transitions returns a copy of the table ordered by state, then by signal
// priority.
func Transitions() []TableEntry {
	entries := make([]TableEntry, 0, len(table))
	for _, state := range AllStates() {
		for _, signal := range AllSignals() {
			if tr, ok := Lookup(state, signal); ok {
				entries = append(entries, TableEntry{From: state, Signal: signal, Transition: tr})
			}
		}
	}
	return entries
}
