package cli

import (
	"fmt"
	"strings"

	"github.com/iudanet/coachsync/internal/client/livesync"
	"github.com/iudanet/coachsync/internal/models"
)

// formatState печатает синхронизированное состояние в одну строку
func formatState(s models.SyncState) string {
	return fmt.Sprintf("mode=%s view=%s word=%d paragraph=%d turn-one=%s speakers=%s",
		s.SessionMode, s.ViewMode, s.CurrentWordIndex, s.CurrentParagraphIndex,
		onOff(s.HighlightTurnOne), onOff(s.HighlightSpeakers))
}

// formatView печатает статус подключения и состояние
func formatView(v livesync.View, t *models.Transcript) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", v.Phase, formatState(v.SyncState))
	if w, ok := wordAt(t, v.CurrentWordIndex); ok {
		fmt.Fprintf(&b, " %q", w.Text)
	}
	if v.ReconnectAttempts > 0 {
		fmt.Fprintf(&b, " reconnects=%d", v.ReconnectAttempts)
	}
	if v.ConnectionError != "" {
		fmt.Fprintf(&b, " error=%q", v.ConnectionError)
	}
	return b.String()
}

// wordAt возвращает слово по индексу. Индекс за пределами транскрипта не ошибка:
// коуч может опережать загруженное содержимое.
func wordAt(t *models.Transcript, idx int) (models.Word, bool) {
	if t == nil || idx < 0 || idx >= len(t.Words) {
		return models.Word{}, false
	}
	return t.Words[idx], true
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
