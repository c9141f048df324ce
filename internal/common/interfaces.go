package common

import "context"

// PreferenceReader is the read side of the delivery preference store. It must
// be side-effect free and safe for concurrent use, including from inside a
// storage transaction.
type PreferenceReader interface {
	// PreferencesFor returns every preference row for the given users and kind
	// on the given channel, covering both the kind-global scope (empty
	// reference id) and the scope of referenceID. Users without a row are
	// simply absent from the result.
	PreferencesFor(ctx context.Context, userIDs []string, kind NotificationKind, referenceID string, channel Channel) ([]Preference, error)
}
