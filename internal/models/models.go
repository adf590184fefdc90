// Package models defines the persisted records and the wire events
// exchanged over an interpretation connection.
package models

import "time"

// Account is a user record resolved during the connection handshake.
// The identity itself (password, verification) lives with the auth
// provider; this row only carries what the pipeline needs.
type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName,omitempty"`
	IsActive   bool      `json:"isActive"`
	IsVerified bool      `json:"isVerified"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Session is one bounded interpretation conversation: one user, one
// language pair, a start and (eventually) an end.
type Session struct {
	ID             int64      `json:"id"`
	UserID         string     `json:"userId"`
	Title          string     `json:"title,omitempty"`
	SourceLanguage string     `json:"sourceLanguage"`
	TargetLanguage string     `json:"targetLanguage"`
	StartedAt      time.Time  `json:"startedAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Ended reports whether the session has been closed. A closed session
// is immutable and must not receive further transcripts.
func (s Session) Ended() bool {
	return s.EndedAt != nil
}

// Transcript is one persisted (original, translated) text pair tied to
// a session and a single audio chunk. TranslatedText is nil when every
// translation provider was unavailable; that is distinct from an empty
// translation.
type Transcript struct {
	ID             int64     `json:"id"`
	SessionID      int64     `json:"sessionId"`
	OriginalText   string    `json:"originalText"`
	TranslatedText *string   `json:"translatedText"`
	SourceLanguage string    `json:"sourceLanguage"`
	TargetLanguage string    `json:"targetLanguage"`
	Timestamp      float64   `json:"timestamp"` // seconds from stream start
	Confidence     *float64  `json:"confidence"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ReadyEvent is sent once to the client after the session is bound.
type ReadyEvent struct {
	Type      string `json:"type"`
	SessionID int64  `json:"session_id"`
}

// TranscriptionEvent is sent to the client once per successfully
// transcribed chunk. TranslatedText and Confidence are nullable on the
// wire, matching the persisted record.
type TranscriptionEvent struct {
	Type           string   `json:"type"`
	OriginalText   string   `json:"original_text"`
	TranslatedText *string  `json:"translated_text"`
	Confidence     *float64 `json:"confidence"`
	Timestamp      string   `json:"timestamp"` // ISO-8601 emission time
}

// Event type tags.
const (
	EventReady         = "ready"
	EventTranscription = "transcription"
)

// NewReadyEvent builds the ready event for a bound session.
func NewReadyEvent(sessionID int64) ReadyEvent {
	return ReadyEvent{Type: EventReady, SessionID: sessionID}
}

// NewTranscriptionEvent builds the client-facing event for one transcript.
func NewTranscriptionEvent(t Transcript, emittedAt time.Time) TranscriptionEvent {
	return TranscriptionEvent{
		Type:           EventTranscription,
		OriginalText:   t.OriginalText,
		TranslatedText: t.TranslatedText,
		Confidence:     t.Confidence,
		Timestamp:      emittedAt.UTC().Format(time.RFC3339),
	}
}
