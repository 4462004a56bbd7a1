// Package cli is an interactive terminal front end for the question
// answering pipeline.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/service/qa"
	"github.com/sandevgo/sejarahbot/pkg/conv"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

const exitCommand = "exit"

type ReadLine struct {
	answerer core.Answerer
	commands core.CmdRouter
	rl       *readline.Instance
}

func NewReadLine(answerer core.Answerer, commands core.CmdRouter, runtimePath string) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sejarah> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       exitCommand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}

	return &ReadLine{answerer: answerer, commands: commands, rl: rl}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started, type 'exit' to quit")

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		reply, quit := respond(ctx, r.answerer, r.commands, line)
		if quit {
			return nil
		}
		if reply != "" {
			fmt.Fprintln(r.rl.Stdout(), reply)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// respond turns one input line into the text to print. Local sessions
// have no identity.
func respond(ctx context.Context, answerer core.Answerer, commands core.CmdRouter, line string) (string, bool) {
	line = strings.TrimSpace(line)
	switch line {
	case exitCommand:
		return "", true
	case "":
		return "", false
	}

	if out, ok := commands.Execute(ctx, line); ok {
		return commandText(ctx, out), false
	}

	answer, err := answerer.Ask(ctx, nil, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("query failed")
		return qa.ClientMessage(err), false
	}
	return answer, false
}

// commandText flattens a markdown command reply the way answers are
// flattened for the terminal.
func commandText(ctx context.Context, md string) string {
	text, err := conv.HTMLToText(conv.MarkdownToHTML([]byte(md)))
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("failed to flatten command reply")
		return md
	}
	return text
}
