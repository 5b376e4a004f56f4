package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type MessageSender interface {
	SendMessage(msg string)
}

// TelegramHandler passes every record to the wrapped handler and also sends
// records at or above level to the Telegram admin chat.
type TelegramHandler struct {
	handler slog.Handler
	sender  MessageSender
	level   slog.Level
	attrs   []slog.Attr
}

func SetupTelegramHandler(log *slog.Logger, sender MessageSender, level slog.Level) *slog.Logger {
	return slog.New(NewTelegramHandler(log.Handler(), sender, level))
}

func NewTelegramHandler(handler slog.Handler, sender MessageSender, level slog.Level) *TelegramHandler {
	return &TelegramHandler{
		handler: handler,
		sender:  sender,
		level:   level,
	}
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level) || level >= h.level
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && h.sender != nil {
		h.sender.SendMessage(h.format(r))
	}
	if !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		handler: h.handler.WithAttrs(attrs),
		sender:  h.sender,
		level:   h.level,
		attrs:   merged,
	}
}

// WithGroup keeps alert text flat; groups only apply to the wrapped handler.
func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		handler: h.handler.WithGroup(name),
		sender:  h.sender,
		level:   h.level,
		attrs:   h.attrs,
	}
}

func (h *TelegramHandler) format(r slog.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
	for _, a := range h.attrs {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		return true
	})
	return b.String()
}
