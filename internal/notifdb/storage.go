package notifdb

import (
	"context"
	"fmt"
	"time"

	"pulsefeed/internal/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage wraps the primary store. Writes that can race with concurrent
// workers go through insert-ignore-on-conflict so redelivery and overlapping
// fanouts are no-ops rather than errors.
type Storage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// Transaction runs fn against a Storage bound to one database transaction.
// Any error rolls the whole unit back.
func (s *Storage) Transaction(ctx context.Context, fn func(tx *Storage) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Storage{db: tx})
	})
}

// UpsertNotification inserts n, ignoring a conflict on the
// (reference_type, reference_id, unique_key) index. On conflict the existing
// row is loaded into n so the caller continues with the winner's id. Returns
// whether this call created the row.
func (s *Storage) UpsertNotification(ctx context.Context, n *Notification) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "reference_type"},
			{Name: "reference_id"},
			{Name: "unique_key"},
		},
		DoNothing: true,
	}).Create(n)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert notification: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing Notification
	err := s.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ? AND unique_key = ?",
			n.ReferenceType, n.ReferenceID, n.UniqueKey).
		First(&existing).Error
	if err != nil {
		return false, fmt.Errorf("failed to load conflicting notification: %w", err)
	}
	*n = existing
	return false, nil
}

// CreateAvatars persists avatar rows. Only called on first creation of the
// parent notification, never on conflict.
func (s *Storage) CreateAvatars(ctx context.Context, avatars []*NotificationAvatar) error {
	if len(avatars) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(avatars).Error; err != nil {
		return fmt.Errorf("failed to insert notification avatars: %w", err)
	}
	return nil
}

func (s *Storage) CreateAttachments(ctx context.Context, attachments []*NotificationAttachment) error {
	if len(attachments) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(attachments).Error; err != nil {
		return fmt.Errorf("failed to insert notification attachments: %w", err)
	}
	return nil
}

// UpsertUserNotification inserts a fanout row; an existing (user_id,
// notification_id) pair is a no-op.
func (s *Storage) UpsertUserNotification(ctx context.Context, un *UserNotification) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "notification_id"},
		},
		DoNothing: true,
	}).Create(un).Error
	if err != nil {
		return fmt.Errorf("failed to insert user notification: %w", err)
	}
	return nil
}

// MarkAsRead stamps the read time on one user's fanout row.
func (s *Storage) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	now := time.Now()
	res := s.db.WithContext(ctx).
		Model(&UserNotification{}).
		Where("user_id = ? AND notification_id = ? AND read_at IS NULL", userID, notificationID).
		Update("read_at", &now)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", res.Error)
	}
	return nil
}

// UnreadCount counts a user's unread, surfaced notifications. Non-public rows
// are excluded; flipping that product decision is a one-line change here.
func (s *Storage) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&UserNotification{}).
		Where("user_id = ? AND read_at IS NULL AND public = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// AvatarsByNotification returns avatar rows in display order.
func (s *Storage) AvatarsByNotification(ctx context.Context, notificationID string) ([]*NotificationAvatar, error) {
	var avatars []*NotificationAvatar
	err := s.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		Order("position ASC").
		Find(&avatars).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load avatars: %w", err)
	}
	return avatars, nil
}

func (s *Storage) AttachmentsByNotification(ctx context.Context, notificationID string) ([]*NotificationAttachment, error) {
	var attachments []*NotificationAttachment
	err := s.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		Order("position ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}
	return attachments, nil
}

// UserNotificationsFor returns every fanout row of one notification, used by
// engine tests and backfill tooling.
func (s *Storage) UserNotificationsFor(ctx context.Context, notificationID string) ([]*UserNotification, error) {
	var rows []*UserNotification
	err := s.db.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user notifications: %w", err)
	}
	return rows, nil
}

// PreferencesFor implements common.PreferenceReader. It fetches rows for both
// the kind-global scope and the given reference scope in one query.
func (s *Storage) PreferencesFor(
	ctx context.Context,
	userIDs []string,
	kind common.NotificationKind,
	referenceID string,
	channel common.Channel,
) ([]common.Preference, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	scopes := []string{""}
	if referenceID != "" {
		scopes = append(scopes, referenceID)
	}

	var rows []*NotificationPreference
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND kind = ? AND channel = ? AND reference_id IN ?",
			userIDs, kind, channel, scopes).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load notification preferences: %w", err)
	}

	prefs := make([]common.Preference, len(rows))
	for i, row := range rows {
		prefs[i] = common.Preference{
			UserID:      row.UserID,
			Kind:        row.Kind,
			ReferenceID: row.ReferenceID,
			Channel:     row.Channel,
			Status:      row.Status,
		}
	}
	return prefs, nil
}

// SetPreference upserts a user's mute/subscribe choice. Pass an empty
// referenceID for the kind-global scope.
func (s *Storage) SetPreference(
	ctx context.Context,
	userID string,
	kind common.NotificationKind,
	referenceID string,
	channel common.Channel,
	status common.PreferenceStatus,
) error {
	pref := &NotificationPreference{
		UserID:      userID,
		Kind:        kind,
		ReferenceID: referenceID,
		Channel:     channel,
		Status:      status,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "kind"},
			{Name: "reference_id"},
			{Name: "channel"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(pref).Error
	if err != nil {
		return fmt.Errorf("failed to set notification preference: %w", err)
	}
	return nil
}

// ClearPreference removes a stored choice, falling back to the subscribed
// default.
func (s *Storage) ClearPreference(
	ctx context.Context,
	userID string,
	kind common.NotificationKind,
	referenceID string,
	channel common.Channel,
) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND reference_id = ? AND channel = ?",
			userID, kind, referenceID, channel).
		Delete(&NotificationPreference{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear notification preference: %w", err)
	}
	return nil
}
