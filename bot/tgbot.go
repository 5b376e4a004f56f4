package bot

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

const queueSize = 64

type Core interface {
	ListSchools(ctx context.Context, q entity.ListQuery) ([]entity.School, error)
}

// TgBot delivers log alerts to the admin chat and answers the admin's
// /schools command.
type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	core        Core
	queue       chan string
}

// NewTgBot must get a logger that does not forward to Telegram itself,
// otherwise a failed send would alert about itself.
func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
		queue:       make(chan string, queueSize),
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SetCore(core Core) {
	t.core = core
}

// Start delivers queued alerts and polls for admin commands until ctx is done.
func (t *TgBot) Start(ctx context.Context) error {

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Warn("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	dispatcher.AddHandler(handlers.NewCommand("schools", t.schoolsCommand))
	updater := ext.NewUpdater(dispatcher, nil)

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("start polling: %w", err)
	}
	t.log.Info("telegram bot started", slog.String("bot", t.botUsername))

	for {
		select {
		case <-ctx.Done():
			if err = updater.Stop(); err != nil {
				t.log.Warn("stopping updater", sl.Err(err))
			}
			return nil
		case msg := <-t.queue:
			t.plainResponse(t.adminId, msg)
		}
	}
}

// SendMessage queues an alert for the admin chat. Alerts are dropped when
// the queue is full so logging never blocks.
func (t *TgBot) SendMessage(msg string) {
	select {
	case t.queue <- msg:
	default:
	}
}

func (t *TgBot) schoolsCommand(b *tgbotapi.Bot, ctx *ext.Context) error {
	if ctx.EffectiveUser == nil || ctx.EffectiveUser.Id != t.adminId {
		return nil
	}
	if t.core == nil {
		return nil
	}
	schools, err := t.core.ListSchools(context.Background(), entity.ListQuery{})
	if err != nil {
		t.plainResponse(ctx.EffectiveChat.Id, "Failed to load schools: "+err.Error())
		return nil
	}
	t.plainResponse(ctx.EffectiveChat.Id, Summary(schools))
	return nil
}

// Summary is the /schools reply.
func Summary(schools []entity.School) string {
	active, population := 0, 0
	for _, s := range schools {
		if s.IsActive() {
			active++
			population += s.Population
		}
	}
	return fmt.Sprintf("Schools: %d (active %d, inactive %d)\nActive population: %d",
		len(schools), active, len(schools)-active, population)
}

func (t *TgBot) plainResponse(chatId int64, text string) {

	sanitized := sanitize(text)

	if sanitized != "" {
		_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
			ParseMode: "MarkdownV2",
		})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Warn("sending message", sl.Err(err))
			_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
			if err != nil {
				t.log.With(
					slog.Int64("id", chatId),
				).Error("sending plain message", sl.Err(err))
			}
		}
	} else {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
	}
}

// sanitize escapes MarkdownV2 reserved characters.
func sanitize(input string) string {
	const reservedChars = "\\`_*[]()~>#+-=|{}.!"

	var b strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
