package formatting

import "github.com/Freeeeeet/od_index/internal/model"

// StatusDisplay представляет отображение статуса заявки
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetStatusDisplay возвращает emoji и текст для статуса заявки или согласования
func GetStatusDisplay(status model.RequestStatus) StatusDisplay {
	displays := map[model.RequestStatus]StatusDisplay{
		model.RequestStatusPending:  {"⏳", "Ожидает решения"},
		model.RequestStatusApproved: {"✅", "Одобрена"},
		model.RequestStatusRejected: {"🚫", "Отклонена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Неизвестно"}
}

// GetSessionText возвращает текст половины дня
func GetSessionText(session model.Session) string {
	switch session {
	case model.SessionForenoon:
		return "до обеда"
	case model.SessionAfternoon:
		return "после обеда"
	case model.SessionFullDay:
		return "весь день"
	}
	return string(session)
}
