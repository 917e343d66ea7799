// Package command implements the text command protocol: tokenizing raw input
// lines, per-connection session state and the dispatcher that executes
// commands against the catalogue store and the music player.
package command

import "strings"

// Command is one parsed input line: the command name followed by its
// arguments in order.
type Command struct {
	Name string
	Args []string
}

// Parse tokenizes a raw input line.
//
// A double quote toggles quoting without being emitted, so a quoted substring
// containing spaces stays one token. A space outside quotes ends the current
// token; consecutive spaces therefore yield empty tokens, exactly as the wire
// protocol has always behaved. The final token is emitted even without a
// trailing delimiter, and embedded newlines are stripped up front.
//
// Empty input parses to a command with an empty name, which the executor
// reports as unknown.
func Parse(input string) Command {
	input = strings.ReplaceAll(input, "\n", "")

	var tokens []string
	var current strings.Builder
	inQuote := false
	for _, r := range input {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ' ' && !inQuote:
			tokens = append(tokens, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	tokens = append(tokens, current.String())

	return Command{Name: tokens[0], Args: tokens[1:]}
}
