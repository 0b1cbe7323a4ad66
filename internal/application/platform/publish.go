package platform

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
)

// PublishToAccount publishes content through one account. The attempt is
// always recorded as a ContentItem: PUBLISHED with the external ID on
// success, FAILED with the adapter's reason otherwise. A local save failure
// after a successful platform post is reported distinctly via SavedLocally.
func (s *OrchestrationService) PublishToAccount(ctx context.Context, accountID uuid.UUID, req PublishRequest) (*PublishResult, error) {
	item, err := content.NewContentItem(accountID, req.Body, req.MediaRefs)
	if err != nil {
		return nil, err
	}
	if req.ScheduledAt != nil {
		if err := item.Schedule(*req.ScheduledAt); err != nil {
			return nil, err
		}
	}

	account, client, err := s.resolveClient(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{ContentID: item.ID, AccountID: accountID, SavedLocally: true}

	posted, postErr := client.PostContent(ctx, platform.ContentPost{
		Body:        req.Body,
		MediaURLs:   req.MediaRefs,
		ScheduledAt: req.ScheduledAt,
	})
	if postErr != nil {
		if err := item.MarkFailed(postErr.Error()); err != nil {
			return nil, err
		}
		result.Error = postErr.Error()
	} else {
		if err := item.MarkPublished(posted.ExternalID, posted.PublishedAt); err != nil {
			return nil, err
		}
		result.Success = true
		result.ExternalID = posted.ExternalID
	}

	if saveErr := s.contents.Save(ctx, item); saveErr != nil {
		s.logger.Error("content item save failed",
			zap.String("account_id", accountID.String()),
			zap.String("content_id", item.ID.String()),
			zap.Bool("posted", result.Success),
			zap.Error(saveErr),
		)
		result.SavedLocally = false
		if result.Error == "" {
			result.Error = fmt.Sprintf("posted but not saved locally: %v", saveErr)
		}
	}

	if result.Success {
		s.notify(ctx, content.NewContentPublishedEvent(item, account.PlatformKind))
	} else {
		s.notify(ctx, content.NewContentPublishFailedEvent(item, account.PlatformKind))
	}
	return result, nil
}

// PublishToAccounts fans the same content out to several accounts with
// per-account isolation: one account's failure never aborts the others.
// Parallelism and the per-account timeout come from the fan-out settings;
// an empty or invalid policy means AnySuccess.
func (s *OrchestrationService) PublishToAccounts(ctx context.Context, accountIDs []uuid.UUID, req PublishRequest, policy AggregationPolicy) (*FanOutResult, error) {
	if !policy.IsValid() {
		policy = AggregationAnySuccess
	}
	if len(accountIDs) == 0 {
		return &FanOutResult{Results: []PublishResult{}, OverallSuccess: false}, nil
	}

	results := make([]PublishResult, len(accountIDs))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOut.Parallelism)
	for i, accountID := range accountIDs {
		i, accountID := i, accountID
		g.Go(func() error {
			attemptCtx, cancel := context.WithTimeout(groupCtx, s.fanOut.AccountTimeout)
			defer cancel()

			result, err := s.PublishToAccount(attemptCtx, accountID, req)
			if err != nil {
				// Account-level failures stay in the result set; returning
				// an error here would cancel the sibling attempts.
				results[i] = PublishResult{
					AccountID:    accountID,
					SavedLocally: true,
					Error:        err.Error(),
				}
				return nil
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &FanOutResult{
		Results:        results,
		OverallSuccess: policy.Evaluate(results),
	}, nil
}
