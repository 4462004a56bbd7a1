package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandevgo/sejarahbot/pkg/conv"
)

type Formatter interface {
	Name() string
	Format(doc Document) (string, error)
}

const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatJSON     = "json"
	FormatTelegram = "telegram"
)

func NewFormatter(name string) (Formatter, error) {
	switch name {
	case FormatHTML, "":
		return HTMLFormatter{}, nil
	case FormatMarkdown:
		return MarkdownFormatter{}, nil
	case FormatText:
		return TextFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	case FormatTelegram:
		return TelegramFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown answer format %q", name)
	}
}

type MarkdownFormatter struct{}

func (MarkdownFormatter) Name() string { return FormatMarkdown }

func (MarkdownFormatter) Format(doc Document) (string, error) {
	return markdown(doc), nil
}

func markdown(doc Document) string {
	var sb strings.Builder
	sb.WriteString(heading(doc.Heading))
	for _, s := range doc.Sections {
		sb.WriteString("\n")
		switch s.Kind {
		case SectionList:
			sb.WriteString(listSection(s.Emoji, s.Label, s.Items))
		default:
			sb.WriteString(label(s.Emoji, s.Label, s.Value))
		}
	}
	return sb.String()
}

// HTMLFormatter produces sanitized HTML for the web client.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string { return FormatHTML }

func (HTMLFormatter) Format(doc Document) (string, error) {
	return conv.MarkdownToHTML([]byte(markdown(doc))), nil
}

// TelegramFormatter limits output to the tags Telegram accepts.
type TelegramFormatter struct{}

func (TelegramFormatter) Name() string { return FormatTelegram }

func (TelegramFormatter) Format(doc Document) (string, error) {
	return conv.MarkdownToTelegramHTML([]byte(markdown(doc))), nil
}

type TextFormatter struct{}

func (TextFormatter) Name() string { return FormatText }

func (TextFormatter) Format(doc Document) (string, error) {
	text, err := conv.HTMLToText(conv.MarkdownToHTML([]byte(markdown(doc))))
	if err != nil {
		return "", fmt.Errorf("failed to flatten answer: %w", err)
	}
	return text, nil
}

type JSONFormatter struct{}

func (JSONFormatter) Name() string { return FormatJSON }

func (JSONFormatter) Format(doc Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode answer: %w", err)
	}
	return string(b), nil
}
