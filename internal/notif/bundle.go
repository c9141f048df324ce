package notif

import "pulsefeed/internal/common"

// Draft is an unpersisted notification. Templates fill everything except Kind
// and Public, which the assembler stamps from the kind's defaults.
type Draft struct {
	Kind          common.NotificationKind
	ReferenceID   string
	ReferenceType common.ReferenceType
	Title         string
	Description   string
	TargetURL     string
	Icon          common.Icon
	Public        bool
	// UniqueKey encodes the dimension along which repeated triggers of the
	// same underlying event collapse: a milestone value, a campaign id, a
	// reminder timestamp, or the acting user id. Empty means the reference
	// alone identifies the event.
	UniqueKey string
}

// AvatarDraft order is significant: the first avatar drives the primary
// display, so squad avatars are prepended ahead of actor avatars.
type AvatarDraft struct {
	ReferenceID string
	Type        common.AvatarType
	Image       string
	Name        string
	TargetURL   string
}

type AttachmentDraft struct {
	ReferenceID string
	Type        common.AttachmentType
	Title       string
	Image       string
}

// Bundle is the in-memory output of a template before persistence. UserIDs is
// the fanout target set, order-insensitive and deduplicated by the assembler.
type Bundle struct {
	Draft       Draft
	UserIDs     []string
	Avatars     []AvatarDraft
	Attachments []AttachmentDraft
}
