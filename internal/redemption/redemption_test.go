package redemption

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ceria/internal/api"
	"ceria/internal/notify"
)

// fakeBackend models the server's redemption rules: a pending request
// holds its points immediately, approval keeps them spent, rejection
// frees them.
type fakeBackend struct {
	earned      map[string]int
	prices      map[string]int
	redemptions []api.Redemption

	createErr  error
	listErr    error
	resolveErr error
	balanceErr error

	createCalls  int
	resolveCalls int
	balanceCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{earned: map[string]int{}, prices: map[string]int{}}
}

func (b *fakeBackend) CreateRedemption(ctx context.Context, childID, rewardID string) error {
	b.createCalls++
	if b.createErr != nil {
		return b.createErr
	}
	b.redemptions = append(b.redemptions, api.Redemption{
		ID:          uuid.NewString(),
		ChildID:     childID,
		RewardID:    rewardID,
		PointsSpent: b.prices[rewardID],
		Status:      api.RedemptionPending,
	})
	return nil
}

func (b *fakeBackend) Balance(ctx context.Context, childID string) (int, error) {
	b.balanceCalls++
	if b.balanceErr != nil {
		return 0, b.balanceErr
	}
	return b.balance(childID), nil
}

func (b *fakeBackend) Redemptions(ctx context.Context) ([]api.Redemption, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]api.Redemption, len(b.redemptions))
	copy(out, b.redemptions)
	return out, nil
}

func (b *fakeBackend) ResolveRedemption(ctx context.Context, id string, status api.RedemptionStatus) error {
	b.resolveCalls++
	if b.resolveErr != nil {
		return b.resolveErr
	}
	for i := range b.redemptions {
		if b.redemptions[i].ID == id {
			if b.redemptions[i].Status != api.RedemptionPending {
				return &api.StatusError{Status: 400, Message: "Invalid status"}
			}
			b.redemptions[i].Status = status
			return nil
		}
	}
	return &api.StatusError{Status: 404, Message: "Redemption not found"}
}

// balance mirrors the server's computation: earned minus everything
// spent or held, rejected requests excluded.
func (b *fakeBackend) balance(childID string) int {
	bal := b.earned[childID]
	for _, r := range b.redemptions {
		if r.ChildID == childID && r.Status != api.RedemptionRejected {
			bal -= r.PointsSpent
		}
	}
	return bal
}

func (b *fakeBackend) addPending(childID string, spent int) string {
	id := uuid.NewString()
	b.redemptions = append(b.redemptions, api.Redemption{
		ID:          id,
		ChildID:     childID,
		PointsSpent: spent,
		Status:      api.RedemptionPending,
	})
	return id
}

func newService(backend Backend) (*Service, *notify.Recorder) {
	recorder := &notify.Recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(backend, recorder, logger), recorder
}

func TestRedeemSuccessRefreshesBalance(t *testing.T) {
	backend := newFakeBackend()
	backend.earned["c1"] = 50
	backend.prices["r1"] = 30
	svc, recorder := newService(backend)

	reward := api.Reward{ID: "r1", Name: "Es Krim", PointsRequired: 30}
	balance, err := svc.Redeem(context.Background(), "c1", "Aisyah", reward, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.createCalls)

	// The pending hold is visible immediately through the refetch.
	assert.Equal(t, 1, backend.balanceCalls)
	assert.Equal(t, 20, balance)

	require.Len(t, recorder.Successes, 1)
	assert.Contains(t, recorder.Successes[0], "Aisyah")
	assert.Contains(t, recorder.Successes[0], "Es Krim")
}

func TestRedeemRefreshFailureFallsBackToPrediction(t *testing.T) {
	backend := newFakeBackend()
	backend.earned["c1"] = 50
	backend.prices["r1"] = 30
	backend.balanceErr = fmt.Errorf("connection refused")
	svc, recorder := newService(backend)

	// The request itself succeeded, so the redeem still reports success
	// and predicts the held balance locally.
	reward := api.Reward{ID: "r1", Name: "Es Krim", PointsRequired: 30}
	balance, err := svc.Redeem(context.Background(), "c1", "Aisyah", reward, 50)
	require.NoError(t, err)
	assert.Equal(t, 20, balance)
	assert.Len(t, recorder.Successes, 1)
	assert.Empty(t, recorder.Errors)
}

func TestRedeemInsufficientBalanceStaysLocal(t *testing.T) {
	backend := newFakeBackend()
	svc, recorder := newService(backend)

	reward := api.Reward{ID: "r1", Name: "Sepeda", PointsRequired: 500}
	balance, err := svc.Redeem(context.Background(), "c1", "Umar", reward, 120)
	require.Error(t, err)
	assert.Equal(t, 120, balance)
	assert.Zero(t, backend.createCalls)
	assert.Zero(t, backend.balanceCalls)
	require.Len(t, recorder.Errors, 1)
	assert.Equal(t, "Poin Umar tidak cukup!", recorder.Errors[0])
}

func TestRedeemExactBalanceAllowed(t *testing.T) {
	backend := newFakeBackend()
	backend.earned["c1"] = 30
	backend.prices["r1"] = 30
	svc, _ := newService(backend)

	reward := api.Reward{ID: "r1", Name: "Es Krim", PointsRequired: 30}
	balance, err := svc.Redeem(context.Background(), "c1", "Aisyah", reward, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.createCalls)
	assert.Zero(t, balance)
}

func TestRedeemServerErrorSurfaced(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = &api.StatusError{Status: 400, Message: "Insufficient points"}
	svc, recorder := newService(backend)

	// The local balance looks sufficient but the server disagrees.
	reward := api.Reward{ID: "r1", Name: "Es Krim", PointsRequired: 30}
	balance, err := svc.Redeem(context.Background(), "c1", "Aisyah", reward, 30)
	require.Error(t, err)
	assert.Equal(t, 30, balance)
	assert.Zero(t, backend.balanceCalls)
	require.Len(t, recorder.Errors, 1)
	assert.Equal(t, "Insufficient points", recorder.Errors[0])
}

func TestPendingFiltersAndPreservesOrder(t *testing.T) {
	backend := newFakeBackend()
	first := backend.addPending("c1", 10)
	backend.redemptions = append(backend.redemptions, api.Redemption{
		ID: uuid.NewString(), ChildID: "c1", PointsSpent: 5, Status: api.RedemptionApproved,
	})
	second := backend.addPending("c2", 20)
	backend.redemptions = append(backend.redemptions, api.Redemption{
		ID: uuid.NewString(), ChildID: "c2", PointsSpent: 7, Status: api.RedemptionRejected,
	})
	svc, _ := newService(backend)

	pending, err := svc.Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)

	count, err := svc.BadgeCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestResolveApproveShrinksQueueByRefetch(t *testing.T) {
	backend := newFakeBackend()
	id := backend.addPending("c1", 30)
	keep := backend.addPending("c1", 10)
	svc, recorder := newService(backend)

	pending, err := svc.Resolve(context.Background(), id, api.RedemptionApproved)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, keep, pending[0].ID)
	require.Len(t, recorder.Successes, 1)
	assert.Equal(t, "Permintaan disetujui! ✅", recorder.Successes[0])
}

func TestResolveRejectedNotice(t *testing.T) {
	backend := newFakeBackend()
	id := backend.addPending("c1", 30)
	svc, recorder := newService(backend)

	pending, err := svc.Resolve(context.Background(), id, api.RedemptionRejected)
	require.NoError(t, err)
	assert.Empty(t, pending)
	require.Len(t, recorder.Successes, 1)
	assert.Equal(t, "Permintaan ditolak. ❌", recorder.Successes[0])
}

func TestResolveFailureLeavesQueueUntouched(t *testing.T) {
	backend := newFakeBackend()
	id := backend.addPending("c1", 30)
	backend.resolveErr = fmt.Errorf("connection refused")
	svc, recorder := newService(backend)

	_, err := svc.Resolve(context.Background(), id, api.RedemptionApproved)
	require.Error(t, err)
	require.Len(t, recorder.Errors, 1)
	assert.Equal(t, "Gagal memproses permintaan", recorder.Errors[0])

	backend.resolveErr = nil
	pending, err := svc.Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
}

func TestResolveRejectsInvalidStatus(t *testing.T) {
	backend := newFakeBackend()
	id := backend.addPending("c1", 30)
	svc, _ := newService(backend)

	_, err := svc.Resolve(context.Background(), id, api.RedemptionPending)
	require.Error(t, err)
	assert.Zero(t, backend.resolveCalls)
}

func TestResolveTerminalIsFinal(t *testing.T) {
	backend := newFakeBackend()
	id := backend.addPending("c1", 30)
	svc, _ := newService(backend)

	_, err := svc.Resolve(context.Background(), id, api.RedemptionApproved)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), id, api.RedemptionRejected)
	require.Error(t, err)
	var statusErr *api.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 400, statusErr.Status)
}

func TestBalanceLifecycle(t *testing.T) {
	backend := newFakeBackend()
	backend.earned["c1"] = 50

	// A pending request holds its points straight away.
	first := backend.addPending("c1", 30)
	assert.Equal(t, 20, backend.balance("c1"))

	svc, _ := newService(backend)

	// Approval keeps the points spent.
	_, err := svc.Resolve(context.Background(), first, api.RedemptionApproved)
	require.NoError(t, err)
	assert.Equal(t, 20, backend.balance("c1"))

	// A rejected request hands its points back.
	second := backend.addPending("c1", 10)
	assert.Equal(t, 10, backend.balance("c1"))
	_, err = svc.Resolve(context.Background(), second, api.RedemptionRejected)
	require.NoError(t, err)
	assert.Equal(t, 20, backend.balance("c1"))
}
