package notif

import (
	"errors"
	"fmt"

	"pulsefeed/internal/common"
)

var (
	// ErrUnknownKind means the kind has no registered template.
	ErrUnknownKind = errors.New("unknown notification kind")
	// ErrMissingCapability means the context does not carry the fields the
	// kind's template consumes. This is a contract violation by the caller.
	ErrMissingCapability = errors.New("context missing required capability")
)

// Assembler dispatches (kind, context) pairs to templates and normalizes the
// result. It is pure and safe for concurrent use.
type Assembler struct {
	urls URLs
}

func NewAssembler(urls URLs) *Assembler {
	return &Assembler{urls: urls}
}

// Assemble validates the context against the kind's required capability set,
// runs the template, dedupes the fanout list, and stamps the kind's defaults
// on the draft. A nil bundle with a nil error means there is nothing to send:
// the caller must skip persistence.
func (a *Assembler) Assemble(kind common.NotificationKind, c *Context) (*Bundle, error) {
	t, ok := templates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err := c.satisfies(t.requires); err != nil {
		return nil, fmt.Errorf("cannot assemble %s: %w", kind, err)
	}

	bundle := t.build(a.urls, c)
	bundle.Draft.Kind = kind
	bundle.Draft.Public = common.KindDefaultPublic(kind)
	bundle.UserIDs = dedupeUserIDs(bundle.UserIDs)
	if len(bundle.UserIDs) == 0 {
		return nil, nil
	}
	return bundle, nil
}

// dedupeUserIDs drops duplicates and empty ids, preserving first-seen order.
func dedupeUserIDs(userIDs []string) []string {
	seen := make(map[string]bool, len(userIDs))
	deduped := userIDs[:0]
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}
	return deduped
}
