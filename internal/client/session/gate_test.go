package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/openticket/openticket/internal/client/models"
	"github.com/openticket/openticket/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStatusClient counts calls and answers with a fixed result.
type fakeStatusClient struct {
	calls  atomic.Int32
	status models.Status
	err    error
	block  chan struct{}
}

func (f *fakeStatusClient) Status(ctx context.Context) (models.Status, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.status, f.err
}

var ada = models.User{ID: 1, Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com", Role: "admin"}

func newGate(fc *fakeStatusClient) *Gate {
	return NewGate(fc, logging.Discard())
}

func TestResolve(t *testing.T) {
	user := ada
	tests := []struct {
		name    string
		outcome Outcome
		status  *models.Status
		want    State
	}{
		{name: "pending", outcome: OutcomePending, want: StateLoading},
		{name: "pending ignores status", outcome: OutcomePending, status: &models.Status{SetupComplete: true}, want: StateLoading},
		{name: "failed", outcome: OutcomeFailed, want: StateError},
		{name: "succeeded without status", outcome: OutcomeSucceeded, want: StateError},
		{name: "setup missing", outcome: OutcomeSucceeded, status: &models.Status{}, want: StateSetupRequired},
		{name: "setup done, no user", outcome: OutcomeSucceeded, status: &models.Status{SetupComplete: true}, want: StateLoginRequired},
		{name: "setup done, user", outcome: OutcomeSucceeded, status: &models.Status{SetupComplete: true, User: &user}, want: StateAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.outcome, tt.status))
		})
	}
}

func TestGate_Routing(t *testing.T) {
	user := ada
	tests := []struct {
		name   string
		status models.Status
		want   State
	}{
		{name: "setup required", status: models.Status{SetupComplete: false}, want: StateSetupRequired},
		{name: "login required", status: models.Status{SetupComplete: true}, want: StateLoginRequired},
		{name: "authenticated", status: models.Status{SetupComplete: true, User: &user}, want: StateAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGate(&fakeStatusClient{status: tt.status})
			assert.Equal(t, StateLoading, g.State())
			assert.Equal(t, tt.want, g.Load(context.Background()))
			assert.Equal(t, tt.want, g.State())
		})
	}
}

func TestGate_FetchesOnlyOnce(t *testing.T) {
	fc := &fakeStatusClient{status: models.Status{SetupComplete: true}}
	g := newGate(fc)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		g.Load(ctx)
		_ = g.State()
	}

	assert.Equal(t, int32(1), fc.calls.Load())
}

func TestGate_ConcurrentLoadSharesOneFetch(t *testing.T) {
	fc := &fakeStatusClient{status: models.Status{SetupComplete: true}, block: make(chan struct{})}
	g := newGate(fc)

	var wg sync.WaitGroup
	states := make([]State, 8)
	for i := range states {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i] = g.Load(context.Background())
		}(i)
	}
	close(fc.block)
	wg.Wait()

	assert.Equal(t, int32(1), fc.calls.Load())
	for _, s := range states {
		assert.Equal(t, StateLoginRequired, s)
	}
}

func TestGate_FetchFailureIsTerminal(t *testing.T) {
	boom := errors.New("connection refused")
	fc := &fakeStatusClient{err: boom}
	g := newGate(fc)

	assert.Equal(t, StateError, g.Load(context.Background()))
	assert.Equal(t, StateError, g.Load(context.Background()))
	assert.Equal(t, int32(1), fc.calls.Load())
	assert.ErrorIs(t, g.Err(), boom)

	require.ErrorIs(t, g.CompleteSetup(), ErrInvalidTransition)
	require.ErrorIs(t, g.Authenticate(ada), ErrInvalidTransition)
	assert.Equal(t, StateError, g.State())
}

func TestGate_InconsistentStatusIsAnError(t *testing.T) {
	user := ada
	g := newGate(&fakeStatusClient{status: models.Status{SetupComplete: false, User: &user}})

	assert.Equal(t, StateError, g.Load(context.Background()))
	assert.ErrorIs(t, g.Err(), ErrInvalidStatus)
}

func TestGate_CompleteSetupBypassesNetwork(t *testing.T) {
	fc := &fakeStatusClient{status: models.Status{SetupComplete: false}}
	g := newGate(fc)

	require.Equal(t, StateSetupRequired, g.Load(context.Background()))
	require.NoError(t, g.CompleteSetup())

	st, err := g.Status()
	require.NoError(t, err)
	assert.Equal(t, models.Status{SetupComplete: true}, st)
	assert.Equal(t, StateLoginRequired, g.State())

	g.Load(context.Background())
	assert.Equal(t, StateLoginRequired, g.State())
	assert.Equal(t, int32(1), fc.calls.Load())
}

func TestGate_SetupLoginLogoutFlow(t *testing.T) {
	fc := &fakeStatusClient{status: models.Status{}}
	g := newGate(fc)
	g.Load(context.Background())

	require.NoError(t, g.CompleteSetup())
	require.ErrorIs(t, g.CompleteSetup(), ErrInvalidTransition)

	require.NoError(t, g.Authenticate(ada))
	assert.Equal(t, StateAuthenticated, g.State())

	u, err := g.User()
	require.NoError(t, err)
	assert.Equal(t, ada, u)

	require.ErrorIs(t, g.Authenticate(ada), ErrInvalidTransition)

	require.NoError(t, g.SignOut())
	assert.Equal(t, StateLoginRequired, g.State())
	require.ErrorIs(t, g.SignOut(), ErrInvalidTransition)

	assert.Equal(t, int32(1), fc.calls.Load())
}

func TestGate_MutationsBeforeLoad(t *testing.T) {
	g := newGate(&fakeStatusClient{})

	require.ErrorIs(t, g.CompleteSetup(), ErrInvalidTransition)
	require.ErrorIs(t, g.Authenticate(ada), ErrInvalidTransition)
	require.ErrorIs(t, g.SignOut(), ErrInvalidTransition)
	assert.Equal(t, StateLoading, g.State())
}

func TestGate_ScopeErrors(t *testing.T) {
	g := newGate(&fakeStatusClient{status: models.Status{SetupComplete: true}})

	var scopeErr *ScopeError

	_, err := g.Status()
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, "status", scopeErr.Field)
	assert.Equal(t, StateLoading, scopeErr.State)

	_, err = g.SetupComplete()
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, "setupComplete", scopeErr.Field)

	g.Load(context.Background())

	done, err := g.SetupComplete()
	require.NoError(t, err)
	assert.True(t, done)

	_, err = g.User()
	require.ErrorAs(t, err, &scopeErr)
	assert.Equal(t, "user", scopeErr.Field)
	assert.Equal(t, StateLoginRequired, scopeErr.State)
}

func TestGate_ReturnedUserIsACopy(t *testing.T) {
	user := ada
	fc := &fakeStatusClient{status: models.Status{SetupComplete: true, User: &user}}
	g := newGate(fc)
	g.Load(context.Background())

	user.Name = "changed by caller"
	st, err := g.Status()
	require.NoError(t, err)
	st.User.Name = "changed again"

	got, err := g.User()
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
}

func TestContextScope(t *testing.T) {
	_, err := FromContext(context.Background())
	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)

	assert.PanicsWithError(t, "session: no gate in scope", func() {
		MustFromContext(context.Background())
	})

	g := newGate(&fakeStatusClient{})
	ctx := WithGate(context.Background(), g)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Same(t, g, MustFromContext(ctx))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "setup_required", StateSetupRequired.String())
	assert.Equal(t, "login_required", StateLoginRequired.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(42).String())
}
