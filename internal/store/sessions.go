package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"live-interpreter-service/internal/models"
)

// GetSession fetches a session by id.
func (s *Store) GetSession(ctx context.Context, id int64) (models.Session, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, user_id, COALESCE(title, ''), source_language, target_language,
		       started_at, ended_at, created_at
		FROM sessions WHERE id = $1`, id)

	var sess models.Session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Title, &sess.SourceLanguage,
		&sess.TargetLanguage, &sess.StartedAt, &sess.EndedAt, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// GetOrCreateSession binds a connection to a session. If existingID is
// supplied and resolves to an open session, that session is returned;
// a stale id (unknown or already ended) falls through to creating a
// fresh session. Ownership of a resumed session is the caller's
// responsibility to check.
func (s *Store) GetOrCreateSession(ctx context.Context, existingID *int64, userID, sourceLanguage, targetLanguage string) (models.Session, error) {
	if existingID != nil {
		sess, err := s.GetSession(ctx, *existingID)
		switch {
		case err == nil && !sess.Ended():
			return sess, nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return models.Session{}, err
		}
		// Unknown or ended session id: fall through and create.
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO sessions (user_id, source_language, target_language, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, COALESCE(title, ''), source_language, target_language,
		          started_at, ended_at, created_at`,
		userID, sourceLanguage, targetLanguage, time.Now().UTC())

	var sess models.Session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Title, &sess.SourceLanguage,
		&sess.TargetLanguage, &sess.StartedAt, &sess.EndedAt, &sess.CreatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// AppendTranscript persists one transcript record for a session.
func (s *Store) AppendTranscript(ctx context.Context, t models.Transcript) (models.Transcript, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO transcripts (session_id, original_text, translated_text,
		                         source_language, target_language, audio_timestamp, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		t.SessionID, t.OriginalText, t.TranslatedText,
		t.SourceLanguage, t.TargetLanguage, t.Timestamp, t.Confidence)

	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return models.Transcript{}, fmt.Errorf("append transcript: %w", err)
	}
	return t, nil
}

// CloseSession sets ended_at on an open session. Idempotent: closing an
// already-closed session leaves the original end time untouched.
func (s *Store) CloseSession(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE sessions SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL`,
		id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
