package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	datafeed "github.com/tealfox/abctrader/Internal/database"
	"github.com/tealfox/abctrader/Internal/strategy/signals"
	"github.com/tealfox/abctrader/Internal/utils/formatting"
)

// Bot pushes signal alerts to a single authorized chat and answers a few
// query commands.
type Bot struct {
	bot          *tele.Bot
	authorizedID int64
	startTime    time.Time
}

func NewBot(token string, authorizedID int64) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		bot:          b,
		authorizedID: authorizedID,
		startTime:    time.Now(),
	}

	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) Start() {
	log.Println("📱 Telegram bot started")
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) setupHandlers() {
	// Middleware for authorization
	b.bot.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != b.authorizedID {
				return c.Send("⛔ Unauthorized")
			}
			return next(c)
		}
	})

	b.bot.Handle("/start", b.handleStart)
	b.bot.Handle("/signals", b.handleSignals)
	b.bot.Handle("/scan", b.handleScan)
}

func (b *Bot) handleStart(c tele.Context) error {
	msg := fmt.Sprintf(`🤖 *ABC pattern scanner*

Up since %s

/signals — latest stored signals
/scan SYMBOL — run a live scan`,
		b.startTime.Format("2006-01-02 15:04"))
	return c.Send(msg, tele.ModeMarkdown)
}

func (b *Bot) handleSignals(c tele.Context) error {
	records, err := datafeed.GetRecentSignals(context.Background(), 10)
	if err != nil {
		return c.Send(fmt.Sprintf("⚠️ Could not load signals: %v", err))
	}
	if len(records) == 0 {
		return c.Send("No signals recorded yet")
	}

	msg := "📊 *Latest signals*\n"
	for _, r := range records {
		msg += fmt.Sprintf("\n%s %s (%s) @ %s — R:R %.2f",
			r.Signal, r.Symbol, r.Confidence, r.Price, r.RiskReward)
	}
	return c.Send(msg, tele.ModeMarkdown)
}

// handleScan runs a one-off daily-bar scan for the requested symbol.
func (b *Bot) handleScan(c tele.Context) error {
	symbol := strings.ToUpper(strings.TrimSpace(c.Message().Payload))
	if symbol == "" {
		return c.Send("Usage: /scan SYMBOL")
	}

	bars, err := datafeed.GetDailyBars(symbol, 250)
	if err != nil {
		return c.Send(fmt.Sprintf("⚠️ Could not fetch bars for %s: %v", symbol, err))
	}

	sig := signals.NewABCStrategy().GenerateSignal(symbol, bars)
	if sig == nil {
		return c.Send(fmt.Sprintf("⏸️ %s: no pattern", symbol))
	}
	return c.Send(formatting.FormatSignal(sig))
}

// SendSignalAlert pushes a formatted alert to the authorized chat.
func (b *Bot) SendSignalAlert(sig *signals.Signal) error {
	if sig == nil {
		return nil
	}
	_, err := b.bot.Send(tele.ChatID(b.authorizedID), formatting.FormatSignal(sig))
	return err
}
