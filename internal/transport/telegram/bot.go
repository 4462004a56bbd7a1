package telegram

import (
	"context"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/service/qa"
	"github.com/sandevgo/sejarahbot/pkg/conv"
	"github.com/sandevgo/sejarahbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"

	greeting = "Halo! Saya ChatBot Sejarah Dunia. Tanyakan tentang peristiwa atau tokoh sejarah, " +
		"misalnya <i>Perang Dunia II</i> atau <i>Cleopatra</i>."
)

// Bot answers history questions over Telegram. Every chat is treated as
// its own requester identity.
type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	answerer core.Answerer
	commands core.CmdRouter
	sender   *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	answerer core.Answerer,
	commands core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:      b,
		cfg:      cfg,
		answerer: answerer,
		commands: commands,
		sender:   newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(greeting, tele.ModeHTML)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	identity := identityOf(c.Sender())
	logger := log.FromCtx(ctx).With().Str("user_id", identity.ID).Logger()

	if out, ok := b.commands.Execute(ctx, c.Text()); ok {
		return b.sender.sendHTML(ctx, c.Chat(), conv.MarkdownToTelegramHTML([]byte(out)))
	}

	_ = c.Notify(tele.Typing)

	answer, err := b.answerer.Ask(ctx, identity, c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("query failed")
		return c.Send(qa.ClientMessage(err))
	}

	return b.sender.sendHTML(logger.WithContext(ctx), c.Chat(), answer)
}

func identityOf(u *tele.User) *core.Identity {
	if u == nil {
		return nil
	}
	return &core.Identity{
		ID:   fmt.Sprintf("telegram-%d", u.ID),
		Name: u.FirstName,
	}
}
