package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/coachsync/internal/client/livesync"
	"github.com/iudanet/coachsync/internal/models"
)

func TestFormatView(t *testing.T) {
	transcript := &models.Transcript{
		CallID: 1,
		Words:  []models.Word{{Text: "first"}, {Text: "second"}},
	}

	tests := []struct {
		name       string
		view       livesync.View
		transcript *models.Transcript
		want       string
	}{
		{
			name:       "subscribed with word",
			view:       livesync.View{Phase: livesync.PhaseSubscribed, SyncState: models.SyncState{ViewMode: models.ViewModeWord, SessionMode: models.SessionModeLive, CurrentWordIndex: 1}},
			transcript: transcript,
			want:       `[subscribed] mode=live view=word word=1 paragraph=0 turn-one=off speakers=off "second"`,
		},
		{
			name:       "index past transcript",
			view:       livesync.View{Phase: livesync.PhaseSubscribed, SyncState: models.SyncState{ViewMode: models.ViewModeParagraph, SessionMode: models.SessionModePaused, CurrentWordIndex: 9, HighlightSpeakers: true}},
			transcript: transcript,
			want:       `[subscribed] mode=paused view=paragraph word=9 paragraph=0 turn-one=off speakers=on`,
		},
		{
			name: "reconnecting with error",
			view: livesync.View{
				Phase:             livesync.PhaseReconnecting,
				SyncState:         models.DefaultSyncState(),
				ReconnectAttempts: 2,
				ConnectionError:   "connection error",
			},
			want: `[reconnecting] mode=live view=word word=0 paragraph=0 turn-one=off speakers=off reconnects=2 error="connection error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatView(tt.view, tt.transcript))
		})
	}
}

func TestWordAt(t *testing.T) {
	transcript := &models.Transcript{Words: []models.Word{{Text: "only"}}}

	w, ok := wordAt(transcript, 0)
	assert.True(t, ok)
	assert.Equal(t, "only", w.Text)

	_, ok = wordAt(transcript, 1)
	assert.False(t, ok)
	_, ok = wordAt(transcript, -1)
	assert.False(t, ok)
	_, ok = wordAt(nil, 0)
	assert.False(t, ok)
}
