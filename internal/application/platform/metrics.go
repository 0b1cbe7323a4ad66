package platform

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
)

// SyncMetrics takes a fresh engagement reading for every PUBLISHED item of
// an account. Items are isolated: one item's failure is counted and the
// pass moves on. Each successful reading appends a snapshot, never
// rewriting earlier ones.
func (s *OrchestrationService) SyncMetrics(ctx context.Context, accountID uuid.UUID) (*SyncMetricsResult, error) {
	_, client, err := s.resolveClient(ctx, accountID)
	if err != nil {
		return nil, err
	}

	items, err := s.contents.FindPublishedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := &SyncMetricsResult{}
	for _, item := range items {
		metrics, err := client.GetContentMetrics(ctx, item.ExternalID)
		if err != nil {
			s.logger.Warn("content metrics fetch failed",
				zap.String("account_id", accountID.String()),
				zap.String("content_id", item.ID.String()),
				zap.String("external_id", item.ExternalID),
				zap.Error(err),
			)
			result.Failed++
			continue
		}

		snapshot, err := content.NewEngagementSnapshot(item.ID, accountID, metrics.CapturedAt, metrics.Counts)
		if err != nil {
			result.Failed++
			continue
		}
		if err := s.snapshots.Append(ctx, snapshot); err != nil {
			s.logger.Error("engagement snapshot append failed",
				zap.String("content_id", item.ID.String()),
				zap.Error(err),
			)
			result.Failed++
			continue
		}
		result.Synced++
	}

	s.notify(ctx, content.NewEngagementSyncedEvent(accountID, result.Synced, result.Failed))
	return result, nil
}

// GetAccountAnalytics fetches the account's earnings and audience summary
// for a date range, straight from the platform
func (s *OrchestrationService) GetAccountAnalytics(ctx context.Context, accountID uuid.UUID, r platform.DateRange) (*platform.Analytics, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	_, client, err := s.resolveClient(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return client.GetAnalytics(ctx, r)
}

// CheckAccountStatus probes the account's platform API health
func (s *OrchestrationService) CheckAccountStatus(ctx context.Context, accountID uuid.UUID) (*AccountStatus, error) {
	account, client, err := s.resolveClient(ctx, accountID)
	if err != nil {
		return nil, err
	}
	status, err := client.CheckAPIStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountStatus{
		AccountID:   accountID,
		Kind:        account.PlatformKind,
		Operational: status.Operational,
		Detail:      status.Detail,
		CheckedAt:   status.CheckedAt,
	}, nil
}
