package conv

import "strings"

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
	"~", `\~`,
	"&", `\&`,
	"#", `\#`,
)

// EscapeMarkdown makes s literal inside a markdown document. Inline
// markup and every '#' are escaped, so a heading built from s keeps its
// trailing hashes and "{#id}" suffixes.
func EscapeMarkdown(s string) string {
	lines := strings.Split(inlineEscaper.Replace(s), "\n")
	for i, line := range lines {
		lines[i] = escapeLineStart(line)
	}
	return strings.Join(lines, "\n")
}

// escapeLineStart neutralises block markers at the start of a line:
// bullets, numbered items, thematic breaks and setext underlines.
func escapeLineStart(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	switch {
	case strings.HasPrefix(trimmed, "-"),
		strings.HasPrefix(trimmed, "+"):
		return indent + `\` + trimmed
	case strings.HasPrefix(trimmed, "="):
		// '=' has no backslash escape in the parser.
		return indent + "&#61;" + trimmed[1:]
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
		return indent + trimmed[:digits] + `\` + trimmed[digits:]
	}
	return line
}
