package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ofauto/backend/internal/domain/content"
	"github.com/ofauto/backend/internal/domain/platform"
)

// SyncDirectMessages reconciles one page of platform messages into local
// storage. Each message is upserted by its (platformKind, externalID) key,
// so repeating a page is harmless: only the read flag may change.
func (s *OrchestrationService) SyncDirectMessages(ctx context.Context, accountID uuid.UUID, limit int, cursor string) (*SyncMessagesResult, error) {
	account, client, err := s.resolveClient(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !account.SupportsDMs() {
		return nil, fmt.Errorf("%w: %s direct messages", platform.ErrNotSupported, account.PlatformKind)
	}

	page, err := client.GetDirectMessages(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}

	result := &SyncMessagesResult{Fetched: len(page.Messages), NextCursor: page.NextCursor}
	for _, remote := range page.Messages {
		msg, err := s.toDirectMessage(account, remote)
		if err != nil {
			s.logger.Warn("skipping malformed platform message",
				zap.String("account_id", accountID.String()),
				zap.String("external_id", remote.ExternalID),
				zap.Error(err),
			)
			continue
		}

		_, findErr := s.messages.FindByExternalID(ctx, account.PlatformKind, remote.ExternalID)
		firstSeen := errors.Is(findErr, content.ErrMessageNotFound)
		if upsertErr := s.messages.Upsert(ctx, msg); upsertErr != nil {
			s.logger.Error("direct message upsert failed",
				zap.String("account_id", accountID.String()),
				zap.String("external_id", remote.ExternalID),
				zap.Error(upsertErr),
			)
			continue
		}
		result.Stored++

		// Notify only on first sight of an inbound message.
		if firstSeen && msg.Direction == content.DirectionInbound {
			s.notify(ctx, content.NewDirectMessageReceivedEvent(msg))
		}
	}
	return result, nil
}

// SendDirectMessage sends one message through an account. The capability
// check runs before the adapter is touched; the message is persisted only
// after the platform accepts it. No retries.
func (s *OrchestrationService) SendDirectMessage(ctx context.Context, accountID uuid.UUID, req SendMessageRequest) (*SendMessageResult, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, platform.ErrAccountNotFound
	}
	if !account.SupportsDMs() {
		return nil, fmt.Errorf("%w: %s direct messages", platform.ErrNotSupported, account.PlatformKind)
	}

	client, err := s.registry.GetOrCreate(ctx, account)
	if err != nil {
		return nil, err
	}

	sent, err := client.SendDirectMessage(ctx, platform.OutgoingMessage{
		RecipientID:   req.RecipientID,
		Body:          req.Body,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return nil, err
	}

	msg, err := content.NewDirectMessage(accountID, account.PlatformKind, sent.ExternalID, content.DirectionOutbound)
	if err != nil {
		return nil, err
	}
	msg.RecipientID = req.RecipientID
	msg.Body = req.Body
	msg.AttachmentURL = req.AttachmentURL
	msg.SentAt = sent.SentAt
	msg.Read = true
	msg.AIGenerated = req.AIGenerated
	msg.Prompt = req.Prompt

	result := &SendMessageResult{
		MessageID:    msg.ID,
		ExternalID:   sent.ExternalID,
		SentAt:       sent.SentAt,
		SavedLocally: true,
	}
	if saveErr := s.messages.Insert(ctx, msg); saveErr != nil {
		s.logger.Error("sent message save failed",
			zap.String("account_id", accountID.String()),
			zap.String("external_id", sent.ExternalID),
			zap.Error(saveErr),
		)
		result.SavedLocally = false
		return result, nil
	}

	s.notify(ctx, content.NewDirectMessageSentEvent(msg))
	return result, nil
}

// toDirectMessage maps a platform message into the local record shape
func (s *OrchestrationService) toDirectMessage(account *platform.Account, remote platform.Message) (*content.DirectMessage, error) {
	direction := content.DirectionOutbound
	if remote.Incoming {
		direction = content.DirectionInbound
	}
	msg, err := content.NewDirectMessage(account.ID, account.PlatformKind, remote.ExternalID, direction)
	if err != nil {
		return nil, err
	}
	msg.SenderID = remote.SenderID
	msg.RecipientID = remote.RecipientID
	msg.Body = remote.Body
	msg.AttachmentURL = remote.AttachmentURL
	msg.SentAt = remote.SentAt
	msg.Read = remote.Read
	return msg, nil
}
