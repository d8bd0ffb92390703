package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/peopleops/hr-console/internal/domain"
	"github.com/peopleops/hr-console/internal/events"
	"github.com/peopleops/hr-console/internal/tokenstore"
	apperrors "github.com/peopleops/hr-console/pkg/util"
)

// Login failure messages shown to the user.
const (
	FallbackLoginMessage = "Login failed. Please check your credentials."
	MissingFieldsMessage = "Username and password are required"
	NoTokenMessage       = "No token received from server"
	BadTokenMessage      = "Received token could not be decoded"
	ExpiredTokenMessage  = "Received token has already expired"
	StoreFailedMessage   = "Could not store the session"
)

var (
	// ErrLoginInProgress rejects a login while another exchange is pending.
	ErrLoginInProgress = errors.New("auth: login already in progress")
	// ErrSessionReset reports a pending login discarded by a logout or a
	// rejected request.
	ErrSessionReset = errors.New("auth: session was reset during login")
)

// LoginError is a login failure with a human-readable message.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

// State of the session state machine.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session.
type Snapshot struct {
	State     State
	Identity  *domain.Identity
	ExpiresAt time.Time
}

// Authenticated reports whether the snapshot carries an identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.Identity != nil
}

// SessionReader is the read capability handed to everything except the
// login/logout surface.
type SessionReader interface {
	Snapshot(ctx context.Context) Snapshot
}

// CredentialExchanger performs the login request. The returned body is the
// decoded JSON response of a 2xx answer.
type CredentialExchanger interface {
	ExchangeCredentials(ctx context.Context, creds domain.Credentials) (map[string]any, error)
}

// SessionManager owns the session token and identity. It is the only writer
// of the token store.
type SessionManager struct {
	store      tokenstore.Store
	exchanger  CredentialExchanger
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	extractors []TokenExtractor

	inflight *semaphore.Weighted

	mu       sync.Mutex
	state    State
	identity *domain.Identity
	token    domain.Token
	// epoch changes on every logout and every completed login. A login or an
	// expiry eviction decided in an older epoch is discarded.
	epoch uint64
}

// SessionOption customises a SessionManager.
type SessionOption func(*SessionManager)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

// WithTokenExtractors replaces the token extraction strategies.
func WithTokenExtractors(extractors ...TokenExtractor) SessionOption {
	return func(m *SessionManager) { m.extractors = extractors }
}

// NewSessionManager builds the manager and subscribes it to rejected
// requests on the dispatcher.
func NewSessionManager(store tokenstore.Store, exchanger CredentialExchanger, dispatcher events.Dispatcher, logger *zap.Logger, opts ...SessionOption) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &SessionManager{
		store:      store,
		exchanger:  exchanger,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		extractors: DefaultTokenExtractors(),
		inflight:   semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if dispatcher != nil {
		dispatcher.Subscribe(events.EventRequestRejected, m.handleRejected)
	}
	return m
}

// Init restores a persisted session. Expired, undecodable and inconsistent
// records are cleared silently. Only store I/O failures are returned.
func (m *SessionManager) Init(ctx context.Context) error {
	rec, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, tokenstore.ErrNoSession):
		return nil
	case errors.Is(err, tokenstore.ErrCorrupt):
		m.logger.Debug("discarding inconsistent stored session", zap.Error(err))
		return m.clearIfIdle(ctx)
	case err != nil:
		return fmt.Errorf("session: load: %w", err)
	}

	tok, _, err := DecodeToken(rec.Token)
	if err != nil || !tok.ValidAt(m.now()) {
		m.logger.Debug("discarding stored session", zap.Bool("decodable", err == nil))
		return m.clearIfIdle(ctx)
	}

	m.mu.Lock()
	if m.state != StateUnauthenticated {
		m.mu.Unlock()
		return nil
	}
	identity := rec.Identity
	m.epoch++
	m.state = StateAuthenticated
	m.identity = &identity
	m.token = tok
	m.mu.Unlock()

	m.logger.Info("session restored", zap.String("user_id", identity.ID), zap.String("role", string(identity.Role)))
	m.publish(ctx, events.EventSessionStarted, events.SessionStartedPayload{Identity: identity, Restored: true})
	return nil
}

func (m *SessionManager) clearIfIdle(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateUnauthenticated {
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Login exchanges credentials for a session. At most one exchange runs at a
// time; a concurrent call fails fast with ErrLoginInProgress. Any other
// failure is a *LoginError (or ErrSessionReset) and leaves the session
// unauthenticated.
func (m *SessionManager) Login(ctx context.Context, username, password string) (Snapshot, error) {
	if !m.inflight.TryAcquire(1) {
		return m.peek(), ErrLoginInProgress
	}
	defer m.inflight.Release(1)

	if username == "" || password == "" {
		return m.peek(), &LoginError{Message: MissingFieldsMessage}
	}

	// A new login replaces whatever session exists.
	if m.peek().Authenticated() {
		m.end(ctx, events.EndLogout)
	}

	m.mu.Lock()
	m.state = StateAuthenticating
	epoch := m.epoch
	m.mu.Unlock()

	rec, tok, loginErr := m.exchange(ctx, username, password)

	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return m.peek(), ErrSessionReset
	}
	if loginErr == nil {
		if err := m.store.Save(ctx, rec); err != nil {
			loginErr = &LoginError{Message: StoreFailedMessage, Err: err}
		}
	}
	if loginErr != nil {
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.logger.Warn("login failed", zap.String("reason", loginErr.Message), zap.NamedError("cause", loginErr.Err))
		return m.peek(), loginErr
	}
	identity := rec.Identity
	m.epoch++
	m.state = StateAuthenticated
	m.identity = &identity
	m.token = tok
	m.mu.Unlock()

	m.logger.Info("session started", zap.String("user_id", identity.ID), zap.String("role", string(identity.Role)))
	m.publish(ctx, events.EventSessionStarted, events.SessionStartedPayload{Identity: identity})
	return m.peek(), nil
}

func (m *SessionManager) exchange(ctx context.Context, username, password string) (tokenstore.Record, domain.Token, *LoginError) {
	body, err := m.exchanger.ExchangeCredentials(ctx, domain.Credentials{Username: username, Password: password})
	if err != nil {
		return tokenstore.Record{}, domain.Token{}, &LoginError{Message: loginFailureMessage(err), Err: err}
	}

	raw, strategy, ok := ExtractToken(body, m.extractors)
	if !ok {
		return tokenstore.Record{}, domain.Token{}, &LoginError{Message: NoTokenMessage}
	}
	tok, _, err := DecodeToken(raw)
	if err != nil {
		return tokenstore.Record{}, domain.Token{}, &LoginError{Message: BadTokenMessage, Err: err}
	}
	if !tok.ValidAt(m.now()) {
		return tokenstore.Record{}, domain.Token{}, &LoginError{Message: ExpiredTokenMessage}
	}
	m.logger.Debug("token extracted", zap.String("strategy", strategy))

	identity := DeriveIdentity(username, tok, body)
	return tokenstore.Record{Token: raw, Identity: identity}, tok, nil
}

// loginFailureMessage prefers the backend's own message field.
func loginFailureMessage(err error) string {
	if de := apperrors.ToDomainError(err); de != nil {
		if msg, ok := de.Details["message"].(string); ok && msg != "" {
			return msg
		}
	}
	return FallbackLoginMessage
}

// Logout clears the session regardless of its state. Calling it twice is
// the same as calling it once.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.end(ctx, events.EndLogout)
}

// end clears the store, moves to Unauthenticated and invalidates any
// pending login.
func (m *SessionManager) end(ctx context.Context, reason events.EndReason) error {
	m.mu.Lock()
	return m.endLocked(ctx, reason)
}

// endIf ends the session only if no transition happened since epoch.
func (m *SessionManager) endIf(ctx context.Context, epoch uint64, reason events.EndReason) error {
	m.mu.Lock()
	if m.epoch != epoch {
		m.mu.Unlock()
		return nil
	}
	return m.endLocked(ctx, reason)
}

// endLocked must be called with m.mu held and releases it.
func (m *SessionManager) endLocked(ctx context.Context, reason events.EndReason) error {
	previous := m.identity
	m.epoch++
	m.state = StateUnauthenticated
	m.identity = nil
	m.token = domain.Token{}
	err := m.store.Clear(ctx)
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("clear session store", zap.Error(err))
		err = fmt.Errorf("session: clear: %w", err)
	}
	if previous != nil || reason == events.EndRejected {
		m.logger.Info("session ended", zap.String("reason", string(reason)))
		m.publish(ctx, events.EventSessionEnded, events.SessionEndedPayload{Reason: reason, Identity: previous})
	}
	return err
}

func (m *SessionManager) handleRejected(ctx context.Context, event events.Event) error {
	if p, ok := event.Payload.(events.RequestRejectedPayload); ok {
		m.logger.Warn("request rejected, forcing logout",
			zap.String("method", p.Method), zap.String("path", p.Path), zap.Int("status", p.Status))
	}
	return m.end(ctx, events.EndRejected)
}

// Snapshot returns the current session. An expired token is evicted here,
// at read time.
func (m *SessionManager) Snapshot(ctx context.Context) Snapshot {
	m.mu.Lock()
	expired := m.state == StateAuthenticated && !m.token.ValidAt(m.now())
	epoch := m.epoch
	m.mu.Unlock()
	if expired {
		m.endIf(ctx, epoch, events.EndExpired) //nolint:errcheck
	}
	return m.peek()
}

// Token returns the current bearer token and its expiry.
func (m *SessionManager) Token(ctx context.Context) (domain.Token, bool) {
	if !m.Snapshot(ctx).Authenticated() {
		return domain.Token{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token.Raw != ""
}

func (m *SessionManager) peek() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := Snapshot{State: m.state}
	if m.identity != nil {
		identity := *m.identity
		snap.Identity = &identity
		snap.ExpiresAt = m.token.ExpiresAt
	}
	return snap
}

func (m *SessionManager) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if m.dispatcher == nil {
		return
	}
	if err := m.dispatcher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		m.logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
