package render

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sejarahbot/pkg/conv"
)

func heading(title string) string {
	return fmt.Sprintf("### %s\n", conv.EscapeMarkdown(strings.ReplaceAll(title, "\n", " ")))
}

func label(emoji, name, value string) string {
	return fmt.Sprintf("**%s %s:** %s\n", emoji, name, conv.EscapeMarkdown(value))
}

func listSection(emoji, name string, items []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s %s:**\n\n", emoji, name))
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, conv.EscapeMarkdown(strings.ReplaceAll(item, "\n", " "))))
	}
	return sb.String()
}
