package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habit-tracker/internal/model"
	"habit-tracker/internal/service"
)

const cbDonePrefix = "done:"

const (
	menuLabelHabits = "📋 Habits"
	menuLabelToday  = "🔥 Today"
	menuLabelHelp   = "ℹ️ Help"
)

// sender is the subset of the Telegram API the bot writes through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot exposes habits over Telegram and pushes the daily digest.
type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	habitSvc *service.HabitService
	logSvc   *service.LogService
	recSvc   *service.RecommendationService
	chatIDs  []int64
	logger   *log.Logger
}

func New(token string, chatIDs []int64, habitSvc *service.HabitService, logSvc *service.LogService, recSvc *service.RecommendationService, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger.Info("bot authorized", "account", api.Self.UserName)

	b := newBot(api, chatIDs, habitSvc, logSvc, recSvc, logger)
	b.api = api
	return b, nil
}

func newBot(out sender, chatIDs []int64, habitSvc *service.HabitService, logSvc *service.LogService, recSvc *service.RecommendationService, logger *log.Logger) *Bot {
	return &Bot{
		out:      out,
		habitSvc: habitSvc,
		logSvc:   logSvc,
		recSvc:   recSvc,
		chatIDs:  chatIDs,
		logger:   logger,
	}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return errors.New("bot has no telegram connection")
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.logger.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				b.logger.Error("handle callback", "err", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				b.logger.Error("handle message", "err", err)
			}
		}
	}

	return nil
}

// Notify sends the digest to every configured chat.
func (b *Bot) Notify(ctx context.Context, recs []model.Recommendation) error {
	text := b.recSvc.DailySummary(recs)
	var errs []error
	for _, chatID := range b.chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.sendWithReplyMarkup(chatID, text, doneKeyboard(recs)); err != nil {
			errs = append(errs, fmt.Errorf("send digest to %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.IsCommand() {
		b.logger.Debug("command", "chat", msg.Chat.ID, "cmd", msg.Command(), "args", msg.CommandArguments())
		return b.handleCommand(ctx, msg)
	}

	switch strings.TrimSpace(msg.Text) {
	case menuLabelHabits:
		return b.handleHabits(ctx, msg.Chat.ID)
	case menuLabelToday:
		return b.handleToday(ctx, msg.Chat.ID)
	case menuLabelHelp:
		return b.handleHelp(msg.Chat.ID)
	}

	return b.sendText(msg.Chat.ID, "I did not get that. Try /today or /help.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start", "help":
		return b.handleHelp(msg.Chat.ID)
	case "habits":
		return b.handleHabits(ctx, msg.Chat.ID)
	case "today":
		return b.handleToday(ctx, msg.Chat.ID)
	case "done":
		args := strings.TrimSpace(msg.CommandArguments())
		if args == "" {
			return b.sendText(msg.Chat.ID, "Give the habit id: /done 3")
		}
		id, err := strconv.ParseUint(args, 10, 64)
		if err != nil {
			return b.sendText(msg.Chat.ID, "The habit id must be a number.")
		}
		return b.markDone(ctx, msg.Chat.ID, uint(id))
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "ℹ️ <b>Habit tracker</b>\n" +
		"• /habits - all habits with their last log\n" +
		"• /today - habits still waiting for today\n" +
		"• /done &lt;id&gt; - log a habit as completed today\n" +
		"• /help - this message"
	return b.sendText(chatID, text)
}

func (b *Bot) handleHabits(ctx context.Context, chatID int64) error {
	habits, err := b.habitSvc.ListHabits(ctx)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load habits: %s", escape(err.Error())))
	}
	if len(habits) == 0 {
		return b.sendText(chatID, "No habits yet.")
	}

	var sb strings.Builder
	sb.WriteString("📋 <b>Habits</b>\n")
	for _, habit := range habits {
		latest, err := b.logSvc.MostRecentFor(ctx, habit.ID)
		if err != nil {
			return err
		}
		sb.WriteString(formatHabit(habit, latest))
	}
	return b.sendText(chatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) handleToday(ctx context.Context, chatID int64) error {
	recs, err := b.recSvc.RecommendAll(ctx)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not build the list: %s", escape(err.Error())))
	}
	return b.sendWithReplyMarkup(chatID, b.recSvc.DailySummary(recs), doneKeyboard(recs))
}

func (b *Bot) markDone(ctx context.Context, chatID int64, habitID uint) error {
	entry, err := b.logSvc.AppendLog(ctx, habitID, service.LogInput{})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return b.sendText(chatID, "Habit not found.")
		}
		return b.sendText(chatID, fmt.Sprintf("Error: %s", escape(err.Error())))
	}
	b.logger.Info("habit logged from chat", "habit_id", habitID, "chat", chatID)
	return b.sendText(chatID, fmt.Sprintf("✅ Habit #%d logged for %s.", habitID, entry.LogDate))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}
	if !strings.HasPrefix(cb.Data, cbDonePrefix) {
		_, err := b.out.Request(tgbotapi.NewCallback(cb.ID, ""))
		return err
	}

	id, err := strconv.ParseUint(strings.TrimPrefix(cb.Data, cbDonePrefix), 10, 64)
	if err != nil {
		_, reqErr := b.out.Request(tgbotapi.NewCallback(cb.ID, "Bad habit id"))
		return errors.Join(err, reqErr)
	}
	if _, err := b.out.Request(tgbotapi.NewCallback(cb.ID, "Logged")); err != nil {
		return err
	}
	return b.markDone(ctx, cb.Message.Chat.ID, uint(id))
}

func (b *Bot) sendText(chatID int64, text string) error {
	return b.sendWithReplyMarkup(chatID, text, mainMenuKeyboard())
}

func (b *Bot) sendWithReplyMarkup(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	_, err := b.out.Send(msg)
	return err
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelToday),
			tgbotapi.NewKeyboardButton(menuLabelHabits),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// doneKeyboard has one "log it" button per due habit.
func doneKeyboard(recs []model.Recommendation) interface{} {
	if len(recs) == 0 {
		return mainMenuKeyboard()
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(recs))
	for _, rec := range recs {
		label := fmt.Sprintf("✅ #%d", rec.HabitID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbDonePrefix, rec.HabitID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatHabit(habit model.Habit, latest *model.Log) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>#%d</b> %s", habit.ID, escape(strings.TrimSpace(habit.Name))))
	if habit.Frequency != "" {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", escape(habit.Frequency)))
	}
	if latest != nil {
		sb.WriteString(fmt.Sprintf("\n   ✅ Last: %s", latest.LogDate))
	} else {
		sb.WriteString("\n   ✅ Never logged")
	}
	sb.WriteByte('\n')
	return sb.String()
}

func escape(s string) string {
	return html.EscapeString(s)
}
