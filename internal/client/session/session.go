// Package session owns the client's authentication lifecycle. All state
// transitions are serialized through the Store's operations; no other
// component mutates the session directly.
//
// The machine is cyclic: logout always returns it to the unauthenticated
// starting point. A logout racing an in-flight login is not arbitrated —
// last state-write wins.
package session

import (
	"context"
	"sync"

	"github.com/aquapure/backoffice/internal/client/api"
	"github.com/aquapure/backoffice/internal/client/credentials"
	"github.com/aquapure/backoffice/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Status enumerates the session states.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusVerifying       Status = "verifying"
	StatusAuthenticated   Status = "authenticated"
	StatusFailed          Status = "failed"
)

// Snapshot is a point-in-time view of the session. User is set only when
// Status is StatusAuthenticated; Reason only when StatusFailed.
type Snapshot struct {
	Status Status
	User   *api.Admin
	Reason string
}

// AuthAPI is the slice of the gateway the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Profile(ctx context.Context) (*api.Admin, error)
	Logout(ctx context.Context) error
}

// Notifier surfaces user-facing notices (logout confirmation, session
// expiry). The session store never renders UI itself.
type Notifier func(msg string)

// Fallback messages used when neither the server nor the transport supplied
// a reason.
const (
	loginFailedFallback  = "Login failed. Please check your credentials."
	verifyFailedFallback = "Session verification failed."
	invalidLoginReason   = "Invalid login response"
	invalidProfileReason = "Invalid profile response"
)

// Store holds the current session state and serializes transitions through
// Bootstrap, Login, Logout, ClearError and ForceLogout.
//
// Overlapping Bootstrap or Login calls are collapsed with a single-flight
// guard: concurrent callers share the in-flight result instead of issuing a
// duplicate network call.
type Store struct {
	apiClient AuthAPI
	creds     credentials.Store
	logger    logging.Logger
	notify    Notifier

	flight singleflight.Group

	mu     sync.Mutex
	status Status
	user   *api.Admin
	reason string
}

// Option customizes a Store.
type Option func(*Store)

// WithNotifier installs the callback used for logout confirmations and
// session-expiry notices.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// New builds a Store in the unauthenticated state. The credential store and
// API client are injected so tests can swap in fakes.
func New(apiClient AuthAPI, creds credentials.Store, logger logging.Logger, opts ...Option) *Store {
	s := &Store{
		apiClient: apiClient,
		creds:     creds,
		logger:    logger,
		status:    StatusUnauthenticated,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, User: s.user, Reason: s.reason}
}

func (s *Store) setState(status Status, user *api.Admin, reason string) {
	s.mu.Lock()
	s.status = status
	s.user = user
	s.reason = reason
	s.mu.Unlock()
}

// Bootstrap checks any stored credential against the profile endpoint and
// settles the session accordingly. With no stored credential it transitions
// straight to unauthenticated without touching the network. Errors never
// escape: every outcome is a definite state.
func (s *Store) Bootstrap(ctx context.Context) Snapshot {
	v, _, _ := s.flight.Do("bootstrap", func() (any, error) {
		return s.bootstrap(ctx), nil
	})
	return v.(Snapshot)
}

func (s *Store) bootstrap(ctx context.Context) Snapshot {
	token, err := s.creds.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		s.logger.Warn(ctx, "failed to read stored credential", "error", err)
	}
	if token == "" {
		s.setState(StatusUnauthenticated, nil, "")
		return s.State()
	}

	s.setState(StatusVerifying, nil, "")

	admin, err := s.apiClient.Profile(ctx)
	if err != nil {
		s.fail(ctx, reasonFromError(err, verifyFailedFallback))
		return s.State()
	}
	if admin == nil {
		s.fail(ctx, invalidProfileReason)
		return s.State()
	}

	s.setState(StatusAuthenticated, admin, "")
	return s.State()
}

// Login authenticates with the given credentials. It returns true on
// success; on failure the session lands in the failed state with a reason
// drawn from, in priority order: server-supplied message, transport error,
// generic fallback. The in-flight credentials are discarded as soon as the
// network call resolves.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	v, _, _ := s.flight.Do("login", func() (any, error) {
		return s.login(ctx, email, password), nil
	})
	return v.(bool)
}

func (s *Store) login(ctx context.Context, email, password string) bool {
	s.setState(StatusVerifying, nil, "")

	res, err := s.apiClient.Login(ctx, email, password)
	if err != nil {
		s.fail(ctx, reasonFromError(err, loginFailedFallback))
		return false
	}
	if res == nil || res.Admin == nil || res.AccessToken == "" {
		s.fail(ctx, invalidLoginReason)
		return false
	}

	if err := s.creds.Set(ctx, credentials.KeyAccessToken, res.AccessToken); err != nil {
		s.fail(ctx, reasonFromError(err, loginFailedFallback))
		return false
	}
	if err := s.creds.Set(ctx, credentials.KeyProfile, res.Admin.Email); err != nil {
		s.logger.Warn(ctx, "failed to cache profile key", "error", err)
	}
	if res.ExpiresIn != "" {
		if err := s.creds.Set(ctx, credentials.KeyExpiresAt, res.ExpiresIn); err != nil {
			s.logger.Warn(ctx, "failed to cache expiry key", "error", err)
		}
	}

	s.setState(StatusAuthenticated, res.Admin, "")
	return true
}

// Logout ends the session. The server call is best-effort: its failure is
// logged and swallowed, and local state is cleared regardless, so the
// operation is idempotent from any state. When notify is true a success
// notice is surfaced; callers suppress it when they are about to redraw
// anyway.
func (s *Store) Logout(ctx context.Context, notify bool) {
	if err := s.apiClient.Logout(ctx); err != nil {
		s.logger.Warn(ctx, "logout request failed", "error", err)
	}

	if err := credentials.PurgeAuth(ctx, s.creds); err != nil {
		s.logger.Warn(ctx, "failed to purge credentials", "error", err)
	}
	s.setState(StatusUnauthenticated, nil, "")

	if notify && s.notify != nil {
		s.notify("Logged out.")
	}
}

// ForceLogout is the subscriber side of the gateway's 401 handling: it turns
// the unauthorized event into a proper state transition. Already being
// unauthenticated makes it a no-op, which keeps a burst of 401s from
// producing repeated notices.
func (s *Store) ForceLogout(ctx context.Context, reason string) {
	s.mu.Lock()
	if s.status == StatusUnauthenticated {
		s.mu.Unlock()
		return
	}
	s.status = StatusUnauthenticated
	s.user = nil
	s.reason = ""
	s.mu.Unlock()

	// The gateway already purged on 401; repeating it here keeps ForceLogout
	// correct when invoked directly.
	if err := credentials.PurgeAuth(ctx, s.creds); err != nil {
		s.logger.Warn(ctx, "failed to purge credentials", "error", err)
	}

	if s.notify != nil {
		msg := "Session expired. Please sign in again."
		if reason != "" {
			msg = "Session expired: " + reason
		}
		s.notify(msg)
	}
}

// ClearError acknowledges a failure: from the failed state it returns to
// unauthenticated without any network call. No-op otherwise.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusFailed {
		return
	}
	s.status = StatusUnauthenticated
	s.reason = ""
}

// fail enters the failed state. Entering failed always clears the stored
// credential: a credential that failed verification is never kept around.
func (s *Store) fail(ctx context.Context, reason string) {
	if err := credentials.PurgeAuth(ctx, s.creds); err != nil {
		s.logger.Warn(ctx, "failed to purge credentials", "error", err)
	}
	s.setState(StatusFailed, nil, reason)
}

// reasonFromError extracts a human-readable reason. The server's message
// wins when present; otherwise the error text; otherwise the fallback.
func reasonFromError(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
