package notif

import (
	"fmt"
	"net/url"
	"strings"
)

// URLs composes the absolute links notifications point at. Each kind owns its
// own URL shape; templates call the specific helper they need rather than
// concatenating strings ad hoc.
type URLs struct {
	// Web is the webapp origin, e.g. https://app.pulsefeed.dev. Stored
	// without a trailing slash.
	Web string
}

func NewURLs(web string) URLs {
	return URLs{Web: strings.TrimRight(web, "/")}
}

func (u URLs) Root() string {
	return u.Web
}

// Post is the permalink of a post.
func (u URLs) Post(postID string) string {
	return fmt.Sprintf("%s/posts/%s", u.Web, postID)
}

// PostComment deep-links to a comment via its anchor on the post page.
func (u URLs) PostComment(postID, commentID string) string {
	return fmt.Sprintf("%s/posts/%s#c-%s", u.Web, postID, commentID)
}

// PostAnalytics opens the analytics panel of a post.
func (u URLs) PostAnalytics(postID string) string {
	return fmt.Sprintf("%s/posts/%s/analytics", u.Web, postID)
}

func (u URLs) Source(handle string) string {
	return fmt.Sprintf("%s/sources/%s", u.Web, handle)
}

func (u URLs) Squad(handle string) string {
	return fmt.Sprintf("%s/squads/%s", u.Web, handle)
}

// SquadSettings deep-links into the squad settings page; origin tells the
// client which surface opened it.
func (u URLs) SquadSettings(handle string) string {
	return fmt.Sprintf("%s/squads/%s/edit?origin=notification", u.Web, handle)
}

// SquadModeration opens the pending-posts moderation queue of a squad.
func (u URLs) SquadModeration(handle string) string {
	return fmt.Sprintf("%s/squads/moderate?handle=%s", u.Web, url.QueryEscape(handle))
}

// User links to a public profile. Falls back to the webapp root when the user
// has no username yet; templates must degrade, never fabricate a handle.
func (u URLs) User(username string) string {
	if username == "" {
		return u.Web
	}
	return fmt.Sprintf("%s/%s", u.Web, url.PathEscape(username))
}

func (u URLs) DevCard() string {
	return fmt.Sprintf("%s/devcard", u.Web)
}

func (u URLs) Submit() string {
	return fmt.Sprintf("%s/submit", u.Web)
}

func (u URLs) Plus() string {
	return fmt.Sprintf("%s/plus", u.Web)
}

// StreakRestore opens the webapp with the restore dialog armed.
func (u URLs) StreakRestore() string {
	return fmt.Sprintf("%s?streak_restore=true", u.Web)
}

func (u URLs) Campaign(campaignID string) string {
	return fmt.Sprintf("%s/campaigns/%s", u.Web, campaignID)
}
