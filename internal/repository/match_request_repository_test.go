package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/getmentor/mentor-match-api/internal/models"
	"github.com/getmentor/mentor-match-api/internal/repository"
	apperrors "github.com/getmentor/mentor-match-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerFixture has mentors 1 and 2 and mentees 3, 4 and 5
type ledgerFixture struct {
	users  *repository.UserRepository
	ledger *repository.MatchRequestRepository
}

func newLedgerFixture(t *testing.T, strict bool) *ledgerFixture {
	t.Helper()
	users := repository.NewUserRepository()
	ctx := context.Background()
	for _, u := range []struct {
		email string
		role  models.Role
	}{
		{"mentor1@example.com", models.RoleMentor},
		{"mentor2@example.com", models.RoleMentor},
		{"mentee3@example.com", models.RoleMentee},
		{"mentee4@example.com", models.RoleMentee},
		{"mentee5@example.com", models.RoleMentee},
	} {
		_, err := users.Create(ctx, u.email, "hash", "N", u.role, placeholder)
		require.NoError(t, err)
	}
	return &ledgerFixture{users: users, ledger: repository.NewMatchRequestRepository(users, strict)}
}

func (f *ledgerFixture) create(t *testing.T, mentorID, menteeID int) *models.MatchRequest {
	t.Helper()
	req, err := f.ledger.Create(context.Background(), mentorID, menteeID, "hello")
	require.NoError(t, err)
	return req
}

func TestMatchRequestRepository_Create(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	req := f.create(t, 1, 3)
	assert.Equal(t, 1, req.ID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, "hello", req.Message)

	_, err := f.ledger.Create(ctx, 1, 3, "again")
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePending)

	_, err = f.ledger.Create(ctx, 4, 3, "not a mentor")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)

	_, err = f.ledger.Create(ctx, 99, 3, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTarget)

	// another mentee, or the same mentee to another mentor, is fine
	assert.Equal(t, 2, f.create(t, 1, 4).ID)
	assert.Equal(t, 3, f.create(t, 2, 3).ID)
}

func TestMatchRequestRepository_CreateAfterTerminal(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	req := f.create(t, 1, 3)
	_, err := f.ledger.Reject(ctx, req.ID, 1)
	require.NoError(t, err)

	again := f.create(t, 1, 3)
	assert.Equal(t, models.StatusPending, again.Status)
	assert.NotEqual(t, req.ID, again.ID)
}

func TestMatchRequestRepository_AcceptCascades(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	r1 := f.create(t, 1, 3)
	r2 := f.create(t, 1, 4)
	r3 := f.create(t, 1, 5)
	other := f.create(t, 2, 3)

	result, err := f.ledger.Accept(ctx, r2.ID, 1)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, models.StatusAccepted, result.Request.Status)
	assert.Equal(t, []int{r1.ID, r3.ID}, result.CascadeRejected)

	incoming, err := f.ledger.Incoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, incoming, 3)
	assert.Equal(t, models.StatusRejected, incoming[0].Status)
	assert.Equal(t, models.StatusAccepted, incoming[1].Status)
	assert.Equal(t, models.StatusRejected, incoming[2].Status)

	mentor2, err := f.ledger.Incoming(ctx, 2)
	require.NoError(t, err)
	require.Len(t, mentor2, 1)
	assert.Equal(t, other.ID, mentor2[0].ID)
	assert.Equal(t, models.StatusPending, mentor2[0].Status)
}

func TestMatchRequestRepository_OwnershipAndNotFound(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	req := f.create(t, 1, 3)

	_, err := f.ledger.Accept(ctx, 99, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.ledger.Accept(ctx, req.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.ledger.Reject(ctx, req.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.ledger.Cancel(ctx, req.ID, 4)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.ledger.Cancel(ctx, 99, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// failed operations leave the request untouched
	outgoing, err := f.ledger.Outgoing(ctx, 3)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, models.StatusPending, outgoing[0].Status)
}

func TestMatchRequestRepository_StrictTransitions(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	accepted := f.create(t, 1, 3)
	_, err := f.ledger.Accept(ctx, accepted.ID, 1)
	require.NoError(t, err)

	t.Run("re-accept is a no-op", func(t *testing.T) {
		late := f.create(t, 1, 4)
		result, err := f.ledger.Accept(ctx, accepted.ID, 1)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, result.CascadeRejected)
		assert.Equal(t, models.StatusAccepted, result.Request.Status)

		incoming, err := f.ledger.Incoming(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, late.ID, incoming[1].ID)
		assert.Equal(t, models.StatusPending, incoming[1].Status)
	})

	t.Run("reject after accept", func(t *testing.T) {
		_, err := f.ledger.Reject(ctx, accepted.ID, 1)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("accept after cancel", func(t *testing.T) {
		cancelled := f.create(t, 2, 5)
		_, err := f.ledger.Cancel(ctx, cancelled.ID, 5)
		require.NoError(t, err)

		_, err = f.ledger.Accept(ctx, cancelled.ID, 2)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		_, err = f.ledger.Reject(ctx, cancelled.ID, 2)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("re-reject is a no-op", func(t *testing.T) {
		rejected := f.create(t, 2, 4)
		_, err := f.ledger.Reject(ctx, rejected.ID, 2)
		require.NoError(t, err)

		again, err := f.ledger.Reject(ctx, rejected.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, again.Status)
	})
}

func TestMatchRequestRepository_LenientTransitions(t *testing.T) {
	f := newLedgerFixture(t, false)
	ctx := context.Background()

	req := f.create(t, 1, 3)
	_, err := f.ledger.Cancel(ctx, req.ID, 3)
	require.NoError(t, err)

	pending := f.create(t, 1, 4)

	result, err := f.ledger.Accept(ctx, req.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, result.Request.Status)
	assert.Equal(t, []int{pending.ID}, result.CascadeRejected)

	rejected, err := f.ledger.Reject(ctx, req.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
}

func TestMatchRequestRepository_CancelIsUnconditional(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	req := f.create(t, 1, 3)
	_, err := f.ledger.Accept(ctx, req.ID, 1)
	require.NoError(t, err)

	cancelled, err := f.ledger.Cancel(ctx, req.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)

	// a new request to the same mentor is allowed once nothing is pending
	f.create(t, 1, 3)
}

func TestMatchRequestRepository_Listings(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	f.create(t, 1, 3)
	f.create(t, 2, 3)
	f.create(t, 1, 4)

	incoming, err := f.ledger.Incoming(ctx, 1)
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, 3, incoming[0].MenteeID)
	assert.Equal(t, 4, incoming[1].MenteeID)

	outgoing, err := f.ledger.Outgoing(ctx, 3)
	require.NoError(t, err)
	require.Len(t, outgoing, 2)
	assert.Equal(t, 1, outgoing[0].MentorID)
	assert.Equal(t, 2, outgoing[1].MentorID)

	empty, err := f.ledger.Outgoing(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// returned records are copies
	outgoing[0].Status = models.StatusAccepted
	again, err := f.ledger.Outgoing(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, again[0].Status)
}

func TestMatchRequestRepository_ConcurrentAcceptsLeaveOneAccepted(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	ids := []int{f.create(t, 1, 3).ID, f.create(t, 1, 4).ID, f.create(t, 1, 5).ID}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = f.ledger.Accept(ctx, id, 1)
		}(id)
	}
	wg.Wait()

	incoming, err := f.ledger.Incoming(ctx, 1)
	require.NoError(t, err)

	accepted := 0
	for _, req := range incoming {
		if req.Status == models.StatusAccepted {
			accepted++
		} else {
			assert.Equal(t, models.StatusRejected, req.Status)
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestMatchRequestRepository_ConcurrentCreateOnePending(t *testing.T) {
	f := newLedgerFixture(t, true)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created, duplicates := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Create(ctx, 1, 3, "hi")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, apperrors.ErrDuplicatePending) {
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 19, duplicates)
}
