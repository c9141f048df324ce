package notif

import (
	"context"
	"fmt"

	"pulsefeed/internal/common"
)

// Preferences resolves per-user in-app visibility for a notification kind. It
// performs a single batch read and no writes, so it is safe to use for many
// users inside one storage transaction.
type Preferences struct {
	reader common.PreferenceReader
}

func NewPreferences(reader common.PreferenceReader) *Preferences {
	return &Preferences{reader: reader}
}

// Visible returns, per user, whether the notification should surface for that
// user. Absent rows default to subscribed. When both a reference-scoped and a
// kind-global row exist, the most specific scope wins: a mute on the exact
// reference overrides a kind-global subscribe and vice versa.
func (p *Preferences) Visible(
	ctx context.Context,
	userIDs []string,
	kind common.NotificationKind,
	referenceID string,
) (map[string]bool, error) {
	visible := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		visible[id] = true
	}
	if len(userIDs) == 0 {
		return visible, nil
	}

	prefs, err := p.reader.PreferencesFor(ctx, userIDs, kind, referenceID, common.ChannelInApp)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve delivery preferences: %w", err)
	}

	scoped := make(map[string]bool, len(prefs))
	for _, pref := range prefs {
		subscribed := pref.Status == common.PreferenceSubscribed
		if pref.ReferenceID != "" {
			visible[pref.UserID] = subscribed
			scoped[pref.UserID] = true
			continue
		}
		if !scoped[pref.UserID] {
			visible[pref.UserID] = subscribed
		}
	}
	return visible, nil
}
