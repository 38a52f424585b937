package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/od_index/internal/controller/formatting"
	"github.com/Freeeeeet/od_index/internal/directory"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 Справка по командам:\n\n" +
	"/od <студент> [семестр] - Последние OD-заявки студента\n" +
	"/mentees <учитель> - Заявки подопечных учителя\n" +
	"/class <учитель> - Заявки студентов группы куратора\n" +
	"/stats - Состояние индекса\n" +
	"/help - Показать эту справку"

const notReadyText = "⏳ Индекс ещё загружается. Попробуйте позже."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, "👋 Привет! Бот показывает OD-заявки студентов.\n\n"+helpText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, helpText)
}

// HandleOD обрабатывает команду /od <студент> [семестр]
func (h *Handlers) HandleOD(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, h.ODReply(update.Message.Text))
}

// HandleMentees обрабатывает команду /mentees <учитель>
func (h *Handlers) HandleMentees(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, h.RelationshipReply(update.Message.Text, directory.RelationMentee))
}

// HandleClass обрабатывает команду /class <учитель>
func (h *Handlers) HandleClass(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, h.RelationshipReply(update.Message.Text, directory.RelationClassStudent))
}

// HandleStats обрабатывает команду /stats
func (h *Handlers) HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.send(ctx, b, update, h.StatsReply())
}

// ODReply формирует ответ на /od
func (h *Handlers) ODReply(text string) string {
	args := commandArgs(text)
	if len(args) == 0 || len(args) > 2 {
		return "❌ Использование: /od <студент> [семестр]"
	}

	studentID := args[0]
	title := fmt.Sprintf("📋 Заявки студента %s", studentID)

	if len(args) == 1 {
		requests, err := h.directory.OwnerRequests(studentID)
		if err != nil {
			return h.errorReply("get owner requests", err)
		}
		return formatting.FormatRequestList(title, requests, MaxListedRequests)
	}

	semester, err := strconv.Atoi(args[1])
	if err != nil || semester <= 0 {
		return "❌ Семестр должен быть положительным числом"
	}

	requests, err := h.directory.OwnerPeriodRequests(studentID, semester)
	if err != nil {
		return h.errorReply("get owner period requests", err)
	}
	return formatting.FormatRequestList(fmt.Sprintf("%s, семестр %d", title, semester), requests, MaxListedRequests)
}

// RelationshipReply формирует ответ на /mentees и /class
func (h *Handlers) RelationshipReply(text string, kind directory.RelationKind) string {
	args := commandArgs(text)
	if len(args) != 1 {
		if kind == directory.RelationMentee {
			return "❌ Использование: /mentees <учитель>"
		}
		return "❌ Использование: /class <учитель>"
	}

	teacherID := args[0]
	requests, err := h.directory.RelationshipRequests(teacherID, kind)
	if err != nil {
		return h.errorReply("get relationship requests", err)
	}

	title := fmt.Sprintf("👥 Заявки подопечных %s", teacherID)
	if kind == directory.RelationClassStudent {
		title = fmt.Sprintf("🏫 Заявки группы %s", teacherID)
	}
	return formatting.FormatRequestList(title, requests, MaxListedRequests)
}

// StatsReply формирует ответ на /stats
func (h *Handlers) StatsReply() string {
	stats := h.directory.Stats()
	return fmt.Sprintf(
		"📊 Индекс: %s\n\n"+
			"👤 Студентов: %d\n"+
			"👥 Учителей: %d\n"+
			"⚠️ Без истории: %d\n"+
			"📋 Заявок в памяти: %d\n"+
			"🕸 Устаревших записей: %d",
		stats.State,
		stats.Owners,
		stats.Holders,
		stats.Degraded,
		stats.CachedRequests,
		stats.StaleWrites,
	)
}

func (h *Handlers) errorReply(op string, err error) string {
	if errors.Is(err, directory.ErrNotReady) {
		return notReadyText
	}
	h.logger.Error("Failed to "+op, zap.Error(err))
	return "❌ Произошла ошибка. Попробуйте позже."
}

func (h *Handlers) send(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message", zap.Int64("chat_id", update.Message.Chat.ID), zap.Error(err))
	}
}

// commandArgs возвращает аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}
