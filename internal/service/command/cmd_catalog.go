package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/core"
)

// maxListed caps catalog listings so a reply fits in one chat message.
const maxListed = 50

// listCommand prints the identities of one collection.
type listCommand struct {
	name        string
	description string
	title       string
	list        func(ctx context.Context) ([]string, error)
	formatter   *ResponseFormatter
}

func NewEventsCommand(catalog core.CatalogRepository) core.Command {
	return &listCommand{
		name:        "events",
		description: "Daftar peristiwa sejarah",
		title:       "Peristiwa Sejarah",
		list: func(ctx context.Context) ([]string, error) {
			events, err := catalog.ListEvents(ctx)
			if err != nil {
				return nil, err
			}
			titles := make([]string, len(events))
			for i, e := range events {
				titles[i] = e.Title
			}
			return titles, nil
		},
		formatter: NewResponseFormatter(),
	}
}

func NewFiguresCommand(catalog core.CatalogRepository) core.Command {
	return &listCommand{
		name:        "figures",
		description: "Daftar tokoh sejarah",
		title:       "Tokoh Sejarah",
		list: func(ctx context.Context) ([]string, error) {
			figures, err := catalog.ListFigures(ctx)
			if err != nil {
				return nil, err
			}
			names := make([]string, len(figures))
			for i, f := range figures {
				names[i] = f.Name
			}
			return names, nil
		},
		formatter: NewResponseFormatter(),
	}
}

func (c *listCommand) Name() string {
	return c.name
}

func (c *listCommand) Description() string {
	return c.description
}

func (c *listCommand) Execute(ctx context.Context, args []string) (string, error) {
	items, err := c.list(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list %s: %w", c.name, err)
	}

	if len(items) == 0 {
		return c.formatter.Combine(
			c.formatter.Info(c.title),
			"Belum ada data.\n",
		), nil
	}

	more := ""
	if len(items) > maxListed {
		more = fmt.Sprintf("\n…dan %d lainnya\n", len(items)-maxListed)
		items = items[:maxListed]
	}

	return c.formatter.Combine(
		c.formatter.Info(c.title),
		c.formatter.List(items)+more,
	), nil
}
