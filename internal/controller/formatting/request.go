package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/od_index/internal/model"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatPeriod форматирует интервал заявки с половинами дня
func FormatPeriod(req *model.ODRequest) string {
	return fmt.Sprintf("%s (%s) - %s (%s)",
		FormatDate(req.StartDate), GetSessionText(req.StartSession),
		FormatDate(req.EndDate), GetSessionText(req.EndSession),
	)
}

// FormatRequest форматирует заявку для отображения
func FormatRequest(req *model.ODRequest) string {
	display := GetStatusDisplay(req.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Заявка %s\n", display.Emoji, shortID(req))
	fmt.Fprintf(&sb, "👤 Студент: %s, семестр %d\n", req.StudentID, req.Semester)
	fmt.Fprintf(&sb, "📅 %s\n", FormatPeriod(req))
	fmt.Fprintf(&sb, "📝 %s\n", req.Description)
	fmt.Fprintf(&sb, "📊 Статус: %s\n", display.Text)

	for _, a := range req.Approvals {
		ad := GetStatusDisplay(a.Status)
		fmt.Fprintf(&sb, "   %s %s", ad.Emoji, a.Name)
		if a.Remark != nil && *a.Remark != "" {
			fmt.Fprintf(&sb, ": %s", *a.Remark)
		}
		if a.DecidedAt != nil {
			fmt.Fprintf(&sb, " (%s)", FormatDateTime(*a.DecidedAt))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "🕐 Подана: %s", FormatDateTime(req.SubmittedAt))
	return sb.String()
}

// FormatRequestList форматирует список заявок, limit <= 0 - без ограничения
func FormatRequestList(title string, requests []model.ODRequest, limit int) string {
	if len(requests) == 0 {
		return title + "\n\nЗаявок нет."
	}

	shown := requests
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}

	parts := make([]string, 0, len(shown)+2)
	parts = append(parts, fmt.Sprintf("%s (%d)", title, len(requests)))
	for i := range shown {
		parts = append(parts, FormatRequest(&shown[i]))
	}
	if len(shown) < len(requests) {
		parts = append(parts, fmt.Sprintf("… и ещё %d", len(requests)-len(shown)))
	}

	return strings.Join(parts, "\n\n")
}

func shortID(req *model.ODRequest) string {
	id := req.ID.String()
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
