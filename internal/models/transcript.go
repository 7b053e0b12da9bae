package models

// Word представляет одно слово транскрипта звонка с таймкодами.
type Word struct {
	Text      string  `json:"text"`       // Text текст слова
	StartTime float64 `json:"start_time"` // StartTime начало слова в секундах от начала записи
	EndTime   float64 `json:"end_time"`   // EndTime конец слова в секундах
	Turn      int     `json:"turn"`       // Turn номер спикера (1 = первый спикер)
}

// Transcript is the immutable content of a call transcription. Once loaded it
// is never mutated in place; refetches replace it wholesale.
type Transcript struct {
	Words  []Word `json:"words"`
	CallID int64  `json:"call_id"`
}

// Clone создает глубокую копию транскрипта
func (t *Transcript) Clone() *Transcript {
	words := make([]Word, len(t.Words))
	copy(words, t.Words)

	return &Transcript{
		CallID: t.CallID,
		Words:  words,
	}
}

// Duration returns the end time of the last word, or 0 for an empty transcript.
func (t *Transcript) Duration() float64 {
	if len(t.Words) == 0 {
		return 0
	}
	return t.Words[len(t.Words)-1].EndTime
}
