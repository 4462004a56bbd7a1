package command

import (
	"github.com/sandevgo/sejarahbot/internal/core"
)

func NewCommands(catalog core.CatalogRepository) []core.Command {
	return []core.Command{
		NewEventsCommand(catalog),
		NewFiguresCommand(catalog),
	}
}
