package core

import "context"

// CmdRouter handles slash commands typed into a chat transport. The bool
// reports whether input was a command at all.
type CmdRouter interface {
	Execute(ctx context.Context, input string) (string, bool)
	ListCommands() []Command
}

// Command replies in Markdown.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) (string, error)
}
