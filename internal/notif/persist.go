package notif

import (
	"context"
	"fmt"

	"pulsefeed/internal/common"
	"pulsefeed/internal/notifdb"

	"github.com/google/uuid"
)

// Engine persists assembled bundles with at-most-once semantics. All writes of
// one Persist call share a single transaction; redelivering the same event is
// a no-op at the storage layer, so callers never need their own dedup state.
type Engine struct {
	store *notifdb.Storage
}

func NewEngine(store *notifdb.Storage) *Engine {
	return &Engine{store: store}
}

// Persist writes the bundles and their fanout rows inside one transaction and
// returns the ids of the notifications the bundles resolved to (existing ids
// when a bundle collapsed onto an earlier row). Nil bundles are skipped; a
// call with nothing to write returns no ids and touches the database only for
// the transaction itself.
//
// dedupKey collapses conceptually-identical events arriving through different
// kinds: when set, it replaces each draft's unique key with a key derived from
// the kind's family, the dedup key, and the reference type, so kinds sharing a
// family map onto the same stored row.
func (e *Engine) Persist(ctx context.Context, bundles []*Bundle, dedupKey string) ([]string, error) {
	pending := make([]*Bundle, 0, len(bundles))
	for _, b := range bundles {
		if b == nil || len(b.UserIDs) == 0 {
			continue
		}
		pending = append(pending, b)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	var ids []string
	err := e.store.Transaction(ctx, func(tx *notifdb.Storage) error {
		prefs := NewPreferences(tx)
		for _, b := range pending {
			id, err := persistBundle(ctx, tx, prefs, b, dedupKey)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist notification bundles: %w", err)
	}
	return ids, nil
}

func persistBundle(
	ctx context.Context,
	tx *notifdb.Storage,
	prefs *Preferences,
	b *Bundle,
	dedupKey string,
) (string, error) {
	draft := b.Draft
	row := &notifdb.Notification{
		ID:            uuid.NewString(),
		Kind:          draft.Kind,
		ReferenceType: draft.ReferenceType,
		ReferenceID:   draft.ReferenceID,
		UniqueKey:     effectiveUniqueKey(draft, dedupKey),
		Title:         draft.Title,
		TargetURL:     draft.TargetURL,
		Icon:          draft.Icon,
		Public:        draft.Public,
	}
	if draft.Description != "" {
		description := draft.Description
		row.Description = &description
	}

	created, err := tx.UpsertNotification(ctx, row)
	if err != nil {
		return "", err
	}
	// Avatars and attachments belong to the first creation only; a conflict
	// means another delivery already wrote them.
	if created {
		if err := tx.CreateAvatars(ctx, avatarRows(row.ID, b.Avatars)); err != nil {
			return "", err
		}
		if err := tx.CreateAttachments(ctx, attachmentRows(row.ID, b.Attachments)); err != nil {
			return "", err
		}
	}

	visible, err := prefs.Visible(ctx, b.UserIDs, draft.Kind, draft.ReferenceID)
	if err != nil {
		return "", err
	}
	for _, userID := range b.UserIDs {
		un := &notifdb.UserNotification{
			UserID:         userID,
			NotificationID: row.ID,
			Public:         draft.Public && visible[userID],
		}
		if err := tx.UpsertUserNotification(ctx, un); err != nil {
			return "", err
		}
	}
	return row.ID, nil
}

// effectiveUniqueKey is the one place cross-event dedup keys are derived.
// Without a dedup key the draft's own unique key stands; with one, the key
// becomes family:dedup_<key>:<referenceType> so that every kind in the family
// lands on the same storage key for the same business event.
func effectiveUniqueKey(draft Draft, dedupKey string) string {
	if dedupKey == "" {
		return draft.UniqueKey
	}
	return fmt.Sprintf("%s:dedup_%s:%s", common.KindFamily(draft.Kind), dedupKey, draft.ReferenceType)
}

func avatarRows(notificationID string, drafts []AvatarDraft) []*notifdb.NotificationAvatar {
	rows := make([]*notifdb.NotificationAvatar, 0, len(drafts))
	for i, d := range drafts {
		rows = append(rows, &notifdb.NotificationAvatar{
			ID:             uuid.NewString(),
			NotificationID: notificationID,
			Position:       i,
			ReferenceID:    d.ReferenceID,
			Type:           d.Type,
			Image:          d.Image,
			Name:           d.Name,
			TargetURL:      d.TargetURL,
		})
	}
	return rows
}

func attachmentRows(notificationID string, drafts []AttachmentDraft) []*notifdb.NotificationAttachment {
	rows := make([]*notifdb.NotificationAttachment, 0, len(drafts))
	for i, d := range drafts {
		rows = append(rows, &notifdb.NotificationAttachment{
			ID:             uuid.NewString(),
			NotificationID: notificationID,
			Position:       i,
			ReferenceID:    d.ReferenceID,
			Type:           d.Type,
			Title:          d.Title,
			Image:          d.Image,
		})
	}
	return rows
}
