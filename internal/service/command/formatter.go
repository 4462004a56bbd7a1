package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/sejarahbot/pkg/conv"
)

// ResponseFormatter builds the Markdown replies of chat commands.
type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("📚 **%s**\n", title)
}

func (f *ResponseFormatter) Error(message string) string {
	return fmt.Sprintf("❌ %s\n", message)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	var sb strings.Builder
	sb.WriteString("**Contoh pertanyaan**:\n\n")
	for _, ex := range examples {
		sb.WriteString(fmt.Sprintf("`%s`\n", ex))
	}
	return sb.String()
}

// List renders items as separate lines.
func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n\n", conv.EscapeMarkdown(item)))
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}
