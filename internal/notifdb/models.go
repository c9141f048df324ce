package notifdb

import (
	"time"

	"pulsefeed/internal/common"
)

// Notification is the shared, deduplicated notification row. At most one row
// exists per (reference_type, reference_id, unique_key); UniqueKey is stored
// NOT NULL with an empty-string default because NULL values never collide in a
// unique index.
type Notification struct {
	ID            string                  `gorm:"primaryKey;size:36"`
	Kind          common.NotificationKind `gorm:"not null;size:50;index"`
	ReferenceType common.ReferenceType    `gorm:"not null;size:30;uniqueIndex:uq_notification_reference,priority:1"`
	ReferenceID   string                  `gorm:"not null;size:36;uniqueIndex:uq_notification_reference,priority:2"`
	UniqueKey     string                  `gorm:"not null;default:'';size:100;uniqueIndex:uq_notification_reference,priority:3"`
	Title         string                  `gorm:"not null;size:255"`
	Description   *string                 `gorm:"size:512"`
	TargetURL     string                  `gorm:"not null;size:512"`
	Icon          common.Icon             `gorm:"size:30"`
	Public        bool                    `gorm:"not null;default:true"`
	CreatedAt     time.Time               `gorm:"autoCreateTime"`
}

// NotificationAvatar rows keep the order templates produced them in; the first
// avatar drives the primary display.
type NotificationAvatar struct {
	ID             string            `gorm:"primaryKey;size:36"`
	NotificationID string            `gorm:"not null;index;size:36"`
	Position       int               `gorm:"not null"`
	ReferenceID    string            `gorm:"not null;size:36"`
	Type           common.AvatarType `gorm:"not null;size:30"`
	Image          string            `gorm:"size:512"`
	Name           string            `gorm:"size:255"`
	TargetURL      string            `gorm:"size:512"`
}

type NotificationAttachment struct {
	ID             string                `gorm:"primaryKey;size:36"`
	NotificationID string                `gorm:"not null;index;size:36"`
	Position       int                   `gorm:"not null"`
	ReferenceID    string                `gorm:"not null;size:36"`
	Type           common.AttachmentType `gorm:"not null;size:30"`
	Title          string                `gorm:"size:255"`
	Image          string                `gorm:"size:512"`
}

// UserNotification is one user's fanout row for a shared notification. Public
// carries the per-user visibility resolved at persist time; a muted user still
// gets the row, just non-surfaced.
type UserNotification struct {
	UserID         string     `gorm:"primaryKey;size:36"`
	NotificationID string     `gorm:"primaryKey;size:36"`
	Public         bool       `gorm:"not null;default:true"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	ReadAt         *time.Time `gorm:""`
}

// NotificationPreference stores a user's mute/subscribe choice for one kind on
// one channel, optionally scoped to a single reference (empty = kind-global).
type NotificationPreference struct {
	UserID      string                  `gorm:"primaryKey;size:36"`
	Kind        common.NotificationKind `gorm:"primaryKey;size:50"`
	ReferenceID string                  `gorm:"primaryKey;size:36;default:''"`
	Channel     common.Channel          `gorm:"primaryKey;size:20"`
	Status      common.PreferenceStatus `gorm:"not null;size:20"`
	CreatedAt   time.Time               `gorm:"autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"autoUpdateTime"`
}

// Models lists every table the engine owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&Notification{},
		&NotificationAvatar{},
		&NotificationAttachment{},
		&UserNotification{},
		&NotificationPreference{},
	}
}
