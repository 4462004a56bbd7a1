package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/core"
)

type HelpCommand struct {
	router    core.CmdRouter
	formatter *ResponseFormatter
}

func NewHelpCommand(router core.CmdRouter) core.Command {
	return &HelpCommand{
		router:    router,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Tampilkan daftar perintah"
}

func (c *HelpCommand) Execute(ctx context.Context, args []string) (string, error) {
	cmds := c.router.ListCommands()
	items := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		items = append(items, fmt.Sprintf("/%s  %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Info("Perintah"),
		c.formatter.List(items),
		c.formatter.Examples([]string{"Perang Dunia II", "Siapa Cleopatra?"}),
	), nil
}
