package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/sejarahbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendHTML sends an already rendered Telegram HTML answer, in chunks if
// it is too long for one message.
func (s *sender) sendHTML(ctx context.Context, to tele.Recipient, html string) error {
	logger := log.FromCtx(ctx)

	chunks := splitHTML(strings.TrimSpace(html), maxTelegramMsgLen)
	for i, chunk := range chunks {
		if _, err := s.bot.Send(to, chunk, tele.ModeHTML); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Prefer a newline in the last two thirds of the window
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		} else {
			cut = runeBoundary(text, cut)
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

// runeBoundary moves cut back to the start of a UTF-8 sequence.
func runeBoundary(text string, cut int) int {
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return cut
}
