package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/logging"
)

// StatusClient is the single backend read the gate depends on.
type StatusClient interface {
	Status(ctx context.Context) (models.Status, error)
}

// Gate owns the cached bootstrap status of one application instance.
//
// The status is fetched at most once per Gate and never refreshed; later
// changes come only from CompleteSetup, Authenticate and SignOut, which
// replace the cached value without a network call. A Gate is safe for
// concurrent use.
type Gate struct {
	client StatusClient
	log    logging.Logger

	once sync.Once

	mu      sync.RWMutex
	outcome Outcome
	status  *models.Status
	err     error
}

// NewGate returns a gate in the loading state. Nothing is fetched until
// Load is called.
func NewGate(client StatusClient, log logging.Logger) *Gate {
	return &Gate{client: client, log: log.With("component", "session_gate")}
}

// Load performs the status fetch on the first call and returns the
// resulting state. Later and concurrent calls wait for that first fetch and
// never issue another request. A failed fetch leaves the gate in
// StateError for good.
func (g *Gate) Load(ctx context.Context) State {
	g.once.Do(func() { g.fetch(ctx) })
	return g.State()
}

func (g *Gate) fetch(ctx context.Context) {
	st, err := g.client.Status(ctx)
	if err == nil && !st.Valid() {
		err = ErrInvalidStatus
	}

	g.mu.Lock()
	if err != nil {
		g.outcome = OutcomeFailed
		g.err = err
	} else {
		g.outcome = OutcomeSucceeded
		g.status = cloneStatus(st)
	}
	state := Resolve(g.outcome, g.status)
	g.mu.Unlock()

	if err != nil {
		g.log.Error(ctx, "status fetch failed", "error", err)
		return
	}
	g.log.Info(ctx, "status loaded", "state", state)
}

// State resolves the current state from the cached fetch result.
func (g *Gate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Resolve(g.outcome, g.status)
}

// Err returns the fetch failure, if any.
func (g *Gate) Err() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.err
}

// Status returns a copy of the cached status. Before a successful fetch it
// returns a *ScopeError.
func (g *Gate) Status() (models.Status, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.outcome != OutcomeSucceeded || g.status == nil {
		return models.Status{}, &ScopeError{Field: "status", State: Resolve(g.outcome, g.status)}
	}
	return *cloneStatus(*g.status), nil
}

// SetupComplete reports the cached setup flag; see Status for the error.
func (g *Gate) SetupComplete() (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.outcome != OutcomeSucceeded || g.status == nil {
		return false, &ScopeError{Field: "setupComplete", State: Resolve(g.outcome, g.status)}
	}
	return g.status.SetupComplete, nil
}

// User returns the authenticated user. Outside StateAuthenticated it
// returns a *ScopeError.
func (g *Gate) User() (models.User, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	state := Resolve(g.outcome, g.status)
	if state != StateAuthenticated {
		return models.User{}, &ScopeError{Field: "user", State: state}
	}
	return *g.status.User, nil
}

// CompleteSetup records that the first admin now exists. Valid only in
// StateSetupRequired; moves the gate to StateLoginRequired.
func (g *Gate) CompleteSetup() error {
	return g.replace("complete setup", StateSetupRequired, models.Status{SetupComplete: true})
}

// Authenticate records a successful login. Valid only in
// StateLoginRequired; moves the gate to StateAuthenticated.
func (g *Gate) Authenticate(user models.User) error {
	return g.replace("authenticate", StateLoginRequired, models.Status{SetupComplete: true, User: &user})
}

// SignOut drops the cached user after a logout. Valid only in
// StateAuthenticated; moves the gate back to StateLoginRequired.
func (g *Gate) SignOut() error {
	return g.replace("sign out", StateAuthenticated, models.Status{SetupComplete: true})
}

// replace swaps the cached status in one critical section so that a
// mutation always sees the latest previous one.
func (g *Gate) replace(op string, from State, next models.Status) error {
	g.mu.Lock()
	current := Resolve(g.outcome, g.status)
	if current != from {
		g.mu.Unlock()
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, current)
	}
	g.status = cloneStatus(next)
	state := Resolve(g.outcome, g.status)
	g.mu.Unlock()

	g.log.Info(context.Background(), "session changed", "op", op, "from", current, "to", state)
	return nil
}

func cloneStatus(st models.Status) *models.Status {
	out := models.Status{SetupComplete: st.SetupComplete}
	if st.User != nil {
		u := *st.User
		out.User = &u
	}
	return &out
}
