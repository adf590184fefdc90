// Package interpret owns the per-connection interpretation pipeline:
// the handshake, the session binding, the receive/transcribe/translate/
// persist/emit loop, and teardown. One connection is one sequential
// task; nothing here is shared across connections except the Registry
// and the stores, which carry their own synchronization.
package interpret

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"live-interpreter-service/internal/auth"
	"live-interpreter-service/internal/models"
	"live-interpreter-service/internal/observability/logging"
	"live-interpreter-service/internal/observability/metrics"
	"live-interpreter-service/internal/service/transcribe"
)

// CloseCode is a policy-level close reason, mapped by the transport to
// a protocol-appropriate close frame.
type CloseCode int

const (
	// CloseNormal - client disconnected or the session ended cleanly.
	CloseNormal CloseCode = iota
	// CloseBadRequest - missing or malformed handshake parameters.
	CloseBadRequest
	// CloseUnauthorized - invalid or expired token.
	CloseUnauthorized
	// CloseForbidden - inactive account or foreign session id.
	CloseForbidden
	// CloseInternalError - session bind or other internal failure.
	CloseInternalError
)

// String returns the close reason label used in logs and metrics.
func (c CloseCode) String() string {
	switch c {
	case CloseNormal:
		return "normal"
	case CloseBadRequest:
		return "bad_request"
	case CloseUnauthorized:
		return "unauthorized"
	case CloseForbidden:
		return "forbidden"
	case CloseInternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// state is the connection lifecycle position.
//
//	connecting → authenticating → binding → streaming → closing → closed
//
// Failures at any stage jump to closing; closed is final.
type state int

const (
	stateConnecting state = iota
	stateAuthenticating
	stateBinding
	stateStreaming
	stateClosing
	stateClosed
)

// String returns the string representation of the state.
func (s state) String() string {
	switch s {
	case stateConnecting:
		return "CONNECTING"
	case stateAuthenticating:
		return "AUTHENTICATING"
	case stateBinding:
		return "BINDING"
	case stateStreaming:
		return "STREAMING"
	case stateClosing:
		return "CLOSING"
	case stateClosed:
		return "CLOSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// ErrDisconnected is returned by a Conn when the peer has gone away.
var ErrDisconnected = errors.New("client disconnected")

// Conn is one client's transport handle. ReadChunk blocks until the
// next binary audio chunk arrives, returning ErrDisconnected when the
// peer leaves. Implementations must honor context cancellation on
// ReadChunk so a torn-down connection does not leak its reader.
type Conn interface {
	Sender
	ReadChunk(ctx context.Context) ([]byte, error)
	Close(code CloseCode, reason string) error
}

// Params are the handshake parameters carried by the connection.
type Params struct {
	SourceLanguage string
	TargetLanguage string
	Token          string
	SessionID      *int64
}

// AccountStore resolves verified identities to account records.
type AccountStore interface {
	FindOrCreateAccount(ctx context.Context, ident auth.Identity) (models.Account, error)
}

// SessionStore manages session lifecycle and transcript persistence.
type SessionStore interface {
	GetOrCreateSession(ctx context.Context, existingID *int64, userID, sourceLanguage, targetLanguage string) (models.Session, error)
	AppendTranscript(ctx context.Context, t models.Transcript) (models.Transcript, error)
	CloseSession(ctx context.Context, id int64) error
}

// Transcriber is the speech-to-text port.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (transcribe.Result, bool)
}

// Translator is the machine-translation port.
type Translator interface {
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, bool)
}

// TranscriptPublisher forwards persisted transcripts to downstream
// consumers. Optional; best-effort.
type TranscriptPublisher interface {
	PublishTranscript(ctx context.Context, t models.Transcript) error
}

// Deps collects the controller's collaborators.
type Deps struct {
	Verifier     auth.Verifier
	Accounts     AccountStore
	Sessions     SessionStore
	Registry     *Registry
	Transcriber  Transcriber
	Translator   Translator
	Publisher    TranscriptPublisher
	SampleRateHz int
}

// Controller drives the interpretation state machine for every
// connection handed to it.
type Controller struct {
	deps    Deps
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewController creates a controller over the given collaborators.
func NewController(deps Deps, log zerolog.Logger) *Controller {
	return &Controller{
		deps:    deps,
		metrics: metrics.DefaultMetrics,
		log:     log,
	}
}

// connState is the mutable per-connection state threaded through the
// handshake, loop and teardown.
type connState struct {
	state      state
	userID     string
	session    *models.Session
	registered bool
	clock      *streamClock
}

// HandleConnection runs one connection from accept to close. It always
// returns with the connection closed, the registry binding removed and
// the session (if one was bound) ended.
func (c *Controller) HandleConnection(ctx context.Context, conn Conn, params Params) {
	start := time.Now()
	c.metrics.RecordConnectionStart()

	cs := &connState{
		state: stateConnecting,
		clock: newStreamClock(c.deps.SampleRateHz),
	}

	code, reason := c.run(ctx, conn, params, cs)
	c.teardown(conn, cs, code, reason)

	c.metrics.RecordConnectionEnd(code.String(), time.Since(start).Seconds())
}

func (c *Controller) run(ctx context.Context, conn Conn, params Params, cs *connState) (CloseCode, string) {
	cs.state = stateAuthenticating

	if params.Token == "" || params.SourceLanguage == "" || params.TargetLanguage == "" {
		return CloseBadRequest, "missing token or language parameters"
	}

	ident, err := c.deps.Verifier.Verify(ctx, params.Token)
	if err != nil {
		c.log.Debug().Err(err).Msg("Token verification failed")
		return CloseUnauthorized, "invalid token"
	}

	account, err := c.deps.Accounts.FindOrCreateAccount(ctx, ident)
	if err != nil {
		c.log.Error().Err(err).Str("userId", ident.ID).Msg("Account resolution failed")
		return CloseInternalError, "account resolution failed"
	}
	if !account.IsActive {
		return CloseForbidden, "account is inactive"
	}
	cs.userID = account.ID

	cs.state = stateBinding

	session, err := c.deps.Sessions.GetOrCreateSession(ctx, params.SessionID,
		account.ID, params.SourceLanguage, params.TargetLanguage)
	if err != nil {
		c.log.Error().Err(err).Str("userId", account.ID).Msg("Session bind failed")
		return CloseInternalError, "failed to bind session"
	}
	if session.UserID != account.ID {
		// A reused session id must belong to the authenticated user.
		return CloseForbidden, "session belongs to another user"
	}
	cs.session = &session

	resumed := params.SessionID != nil && session.ID == *params.SessionID
	c.metrics.RecordSessionBound(resumed)

	c.deps.Registry.Register(account.ID, conn)
	cs.registered = true

	if err := conn.Send(models.NewReadyEvent(session.ID)); err != nil {
		return CloseNormal, "client disconnected"
	}

	cs.state = stateStreaming
	return c.streamLoop(ctx, conn, params, cs)
}

// streamLoop runs the receive/process/emit cycle until the client
// leaves. Each chunk's pipeline completes (or is abandoned) before the
// next chunk is read; provider failures skip the chunk, persistence
// failures skip the write, and neither ends the session.
func (c *Controller) streamLoop(ctx context.Context, conn Conn, params Params, cs *connState) (CloseCode, string) {
	log := logging.WithSession(cs.userID, cs.session.ID)
	log.Info().
		Str("sourceLanguage", params.SourceLanguage).
		Str("targetLanguage", params.TargetLanguage).
		Msg("Streaming started")

	for {
		chunk, err := conn.ReadChunk(ctx)
		if err != nil {
			if !errors.Is(err, ErrDisconnected) && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("Transport read failed")
			}
			return CloseNormal, "client disconnected"
		}

		c.metrics.RecordAudioReceived(len(chunk))
		offset := cs.clock.advance(len(chunk))

		if len(chunk) == 0 {
			c.metrics.RecordChunkSkipped("empty_chunk")
			continue
		}

		result, ok := c.deps.Transcriber.Transcribe(ctx, chunk, params.SourceLanguage)
		if !ok {
			c.metrics.RecordChunkSkipped("transcription_unavailable")
			continue
		}
		if result.Text == "" {
			c.metrics.RecordChunkSkipped("no_speech")
			continue
		}

		var translated *string
		if text, ok := c.deps.Translator.Translate(ctx, result.Text,
			params.SourceLanguage, params.TargetLanguage); ok {
			translated = &text
		}

		confidence := result.Confidence
		record := models.Transcript{
			SessionID:      cs.session.ID,
			OriginalText:   result.Text,
			TranslatedText: translated,
			SourceLanguage: params.SourceLanguage,
			TargetLanguage: params.TargetLanguage,
			Timestamp:      offset,
			Confidence:     &confidence,
		}

		persisted, err := c.deps.Sessions.AppendTranscript(ctx, record)
		c.metrics.RecordTranscriptPersisted(err)
		if err != nil {
			// Best-effort write: the client still gets the result.
			log.Warn().Err(err).Msg("Transcript write failed")
			persisted = record
		} else if c.deps.Publisher != nil {
			if perr := c.deps.Publisher.PublishTranscript(ctx, persisted); perr != nil {
				log.Warn().Err(perr).Msg("Transcript event publish failed")
			}
		}

		if err := conn.Send(models.NewTranscriptionEvent(persisted, time.Now())); err != nil {
			return CloseNormal, "client disconnected"
		}
		c.metrics.RecordTranscriptEmitted()
	}
}

// teardown releases the connection's resources. The registry binding
// and the session close are attempted independently; a failure in one
// never skips the other.
func (c *Controller) teardown(conn Conn, cs *connState, code CloseCode, reason string) {
	cs.state = stateClosing

	if cs.registered {
		c.deps.Registry.Unregister(cs.userID, conn)
	}

	if cs.session != nil {
		// The connection context may already be canceled; the close
		// must still reach the store.
		if err := c.deps.Sessions.CloseSession(context.Background(), cs.session.ID); err != nil {
			c.log.Error().Err(err).Int64("sessionId", cs.session.ID).Msg("Session close failed")
		} else {
			c.metrics.RecordSessionClosed()
		}
	}

	if err := conn.Close(code, reason); err != nil && !errors.Is(err, ErrDisconnected) {
		c.log.Debug().Err(err).Msg("Connection close failed")
	}

	cs.state = stateClosed
	c.log.Info().
		Str("userId", cs.userID).
		Str("reason", code.String()).
		Msg("Connection closed")
}
