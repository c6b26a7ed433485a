package markdown

import (
	"fmt"
	"strings"
)

// maxHeadingLevel caps the number of leading '#' counted as heading level.
const maxHeadingLevel = 6

// Action is one HTML emission step of a transition. The set is closed.
type Action int

const (
	ActionEmitHeading Action = iota + 1
	ActionOpenParagraph
	ActionCloseParagraph
	ActionOpenUnorderedList
	ActionCloseUnorderedList
	ActionOpenOrderedList
	ActionCloseOrderedList
	ActionOpenListItem
	ActionCloseListItem
)

var actionNames = map[Action]string{
	ActionEmitHeading:        "emit-heading",
	ActionOpenParagraph:      "open-paragraph",
	ActionCloseParagraph:     "close-paragraph",
	ActionOpenUnorderedList:  "open-unordered-list",
	ActionCloseUnorderedList: "close-unordered-list",
	ActionOpenOrderedList:    "open-ordered-list",
	ActionCloseOrderedList:   "close-ordered-list",
	ActionOpenListItem:       "open-list-item",
	ActionCloseListItem:      "close-list-item",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// AllActions lists every Action.
func AllActions() []Action {
	return []Action{
		ActionEmitHeading,
		ActionOpenParagraph,
		ActionCloseParagraph,
		ActionOpenUnorderedList,
		ActionCloseUnorderedList,
		ActionOpenOrderedList,
		ActionCloseOrderedList,
		ActionOpenListItem,
		ActionCloseListItem,
	}
}

// Apply appends the action's fragment to buf. It does not append the
// newline that separates actions; the parser does that.
func (a Action) Apply(buf *strings.Builder, tokens []string) {
	switch a {
	case ActionEmitHeading:
		emitHeading(buf, tokens)
	case ActionOpenParagraph:
		buf.WriteString("<p>\n")
		buf.WriteString(joinTokens(tokens))
	case ActionCloseParagraph:
		buf.WriteString("</p>")
	case ActionOpenUnorderedList:
		buf.WriteString("<ul>")
	case ActionCloseUnorderedList:
		buf.WriteString("</ul>")
	case ActionOpenOrderedList:
		buf.WriteString("<ol>")
	case ActionCloseOrderedList:
		buf.WriteString("</ol>")
	case ActionOpenListItem:
		buf.WriteString("<li>\n")
		// The marker token is consumed. "*item" has no second token, so its text is lost.
		if len(tokens) > 1 {
			buf.WriteString(joinTokens(tokens[1:]))
		}
	case ActionCloseListItem:
		buf.WriteString("</li>")
	default:
		panic(fmt.Sprintf("markdown: unknown action %d", int(a)))
	}
}

// HeadingLevel returns the number of leading '#' in token, capped at 6.
func HeadingLevel(token string) int {
	level := 0
	for level < len(token) && level < maxHeadingLevel && token[level] == '#' {
		level++
	}
	return level
}

func emitHeading(buf *strings.Builder, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	level := HeadingLevel(tokens[0])
	text := make([]string, 0, len(tokens))
	text = append(text, tokens[0][level:])
	text = append(text, tokens[1:]...)

	fmt.Fprintf(buf, "<h%d>\n", level)
	buf.WriteString(joinTokens(text))
	fmt.Fprintf(buf, "\n</h%d>", level)
}
