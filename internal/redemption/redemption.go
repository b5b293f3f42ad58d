// Package redemption drives the reward request lifecycle: a child spends
// points to request a reward, the request sits pending, and a parent
// approves or rejects it. Points are deducted at request time by the
// backend; approval is fulfilment, not payment.
package redemption

import (
	"context"
	"fmt"
	"log/slog"

	"ceria/internal/api"
	"ceria/internal/notify"
)

// Backend is the slice of the API the service uses.
type Backend interface {
	CreateRedemption(ctx context.Context, childID, rewardID string) error
	Redemptions(ctx context.Context) ([]api.Redemption, error)
	ResolveRedemption(ctx context.Context, id string, status api.RedemptionStatus) error
	Balance(ctx context.Context, childID string) (int, error)
}

// Service mediates redemption requests and approvals.
type Service struct {
	api      Backend
	notifier notify.Notifier
	logger   *slog.Logger
}

func New(backend Backend, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{api: backend, notifier: notifier, logger: logger}
}

// Redeem requests a reward for a child and returns the child's refreshed
// balance. The balance the caller displays is checked first; an
// insufficient balance is refused locally and no request reaches the
// backend. The backend re-checks against the authoritative balance and its
// verdict wins on disagreement. A created request holds its points
// straight away, so the balance is refetched after a successful create; if
// that refetch fails, the predicted balance is returned instead and a
// later refetch corrects it.
func (s *Service) Redeem(ctx context.Context, childID, childName string, reward api.Reward, balance int) (int, error) {
	if balance < reward.PointsRequired {
		s.notifier.Error(fmt.Sprintf("Poin %s tidak cukup!", childName))
		return balance, fmt.Errorf("redeem %q: balance %d below price %d", reward.Name, balance, reward.PointsRequired)
	}

	if err := s.api.CreateRedemption(ctx, childID, reward.ID); err != nil {
		s.logger.Error("redemption request failed",
			slog.String("child_id", childID),
			slog.String("reward_id", reward.ID),
			slog.Any("error", err))
		s.notifier.Error(api.ErrorMessage(err, "Gagal tukar hadiah"))
		return balance, err
	}

	s.notifier.Success(fmt.Sprintf("%s tukar %s! 🎁", childName, reward.Name))

	refreshed, err := s.api.Balance(ctx, childID)
	if err != nil {
		s.logger.Warn("balance refresh after redeem failed",
			slog.String("child_id", childID),
			slog.Any("error", err))
		return balance - reward.PointsRequired, nil
	}
	return refreshed, nil
}

// Pending lists the redemptions awaiting a parent decision, in the order
// the backend returned them.
func (s *Service) Pending(ctx context.Context) ([]api.Redemption, error) {
	all, err := s.api.Redemptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing redemptions: %w", err)
	}
	pending := make([]api.Redemption, 0, len(all))
	for _, r := range all {
		if r.Status == api.RedemptionPending {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// BadgeCount is the number of pending redemptions, for the dashboard badge.
func (s *Service) BadgeCount(ctx context.Context) (int, error) {
	pending, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

// Resolve applies a parent's decision and returns the refreshed pending
// list. The list shrinks by refetching, never by local removal, so a
// request resolved from another device disappears too.
func (s *Service) Resolve(ctx context.Context, id string, status api.RedemptionStatus) ([]api.Redemption, error) {
	if status != api.RedemptionApproved && status != api.RedemptionRejected {
		return nil, fmt.Errorf("resolve redemption %s: invalid status %q", id, status)
	}

	if err := s.api.ResolveRedemption(ctx, id, status); err != nil {
		s.notifier.Error(api.ErrorMessage(err, "Gagal memproses permintaan"))
		return nil, err
	}

	if status == api.RedemptionApproved {
		s.notifier.Success("Permintaan disetujui! ✅")
	} else {
		s.notifier.Success("Permintaan ditolak. ❌")
	}
	return s.Pending(ctx)
}
