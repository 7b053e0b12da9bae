package transcript

import "errors"

var (
	// ErrTranscription wraps every failure to load transcript content
	ErrTranscription = errors.New("transcription error")

	// ErrEmptyTranscript is reported when the server returns zero words.
	// Highlighting needs at least one addressable word, so this is an error
	// rather than a valid empty state. It also matches ErrTranscription.
	ErrEmptyTranscript error = emptyTranscriptError{}
)

type emptyTranscriptError struct{}

func (emptyTranscriptError) Error() string { return "empty transcript" }

func (emptyTranscriptError) Is(target error) bool { return target == ErrTranscription }
