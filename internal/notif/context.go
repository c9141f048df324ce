package notif

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Context entity snapshots. These are immutable, read-only copies of domain
// rows loaded by the worker; the engine never writes them back.

type Post struct {
	ID       string
	Title    string
	Image    string
	AuthorID string
	ScoutID  string
	SourceID string
	// Type distinguishes original content from shares of other posts. For a
	// share, SharedPostID names the wrapped post and SharedPost on the
	// Context carries its snapshot.
	Type         string
	MediaType    string
	SharedPostID string
}

const (
	PostTypeArticle = "article"
	PostTypeShare   = "share"

	MediaTypeVideo = "video"
)

// IsShare reports whether the post is a share wrapper around another post.
func (p *Post) IsShare() bool {
	return p.Type == PostTypeShare
}

type Source struct {
	ID     string
	Name   string
	Handle string
	Image  string
	Type   string
}

const (
	SourceTypeMachine = "machine"
	SourceTypeSquad   = "squad"
)

func (s *Source) IsSquad() bool {
	return s.Type == SourceTypeSquad
}

type User struct {
	ID       string
	Name     string
	Username string
	Image    string
}

type Comment struct {
	ID       string
	PostID   string
	AuthorID string
	Content  string
}

type Submission struct {
	ID  string
	URL string
}

type SourceRequest struct {
	ID       string
	SourceID string
}

type Campaign struct {
	ID string
}

type Streak struct {
	UserID     string
	Length     int
	LastViewAt time.Time
}

type TopReaderBadge struct {
	ID       string
	Keyword  string
	Image    string
	IssuedAt time.Time
}

type Award struct {
	TransactionID string
	Name          string
	Note          string
	Amount        int
}

type Organization struct {
	ID    string
	Name  string
	Image string
}

type PostAnalytics struct {
	Impressions int
	Period      string
}

// Capability is one orthogonal slice of context a notification kind requires.
// Capabilities compose by intersection: each kind declares the exact set its
// template consumes, and the assembler rejects contexts that do not satisfy it
// before dispatching.
type Capability uint32

const (
	CapPost Capability = 1 << iota
	CapSource
	CapComment
	CapCommenter
	CapUpvoters
	CapDoneBy
	CapSubmission
	CapSourceRequest
	CapCampaign
	CapStreak
	CapTopReader
	CapAward
	CapOrganization
	CapAnalytics
	CapReminder
)

var capabilityNames = map[Capability]string{
	CapPost:          "post",
	CapSource:        "source",
	CapComment:       "comment",
	CapCommenter:     "commenter",
	CapUpvoters:      "upvoters",
	CapDoneBy:        "doneBy",
	CapSubmission:    "submission",
	CapSourceRequest: "sourceRequest",
	CapCampaign:      "campaign",
	CapStreak:        "streak",
	CapTopReader:     "topReader",
	CapAward:         "award",
	CapOrganization:  "organization",
	CapAnalytics:     "analytics",
	CapReminder:      "reminder",
}

// Context is the capability-typed input to a template. Every field is
// optional; a kind's required capability set determines which ones must be
// present for that kind. UserIDs is always the fanout target list and the
// caller is responsible for excluding the acting user before assembling.
type Context struct {
	UserIDs []string

	Post       *Post
	SharedPost *Post
	Source     *Source
	Comment    *Comment
	Commenter  *User
	// Upvoters are ordered most recent first.
	Upvoters []*User
	Upvotes  int
	DoneBy   *User

	Submission    *Submission
	SourceRequest *SourceRequest
	Campaign      *Campaign
	Streak        *Streak
	TopReader     *TopReaderBadge
	Award         *Award
	Organization  *Organization
	Analytics     *PostAnalytics
	RemindAt      time.Time
}

// capabilities computes the set the context actually provides.
func (c *Context) capabilities() Capability {
	var caps Capability
	if c.Post != nil {
		caps |= CapPost
	}
	if c.Source != nil {
		caps |= CapSource
	}
	if c.Comment != nil {
		caps |= CapComment
	}
	if c.Commenter != nil {
		caps |= CapCommenter
	}
	if len(c.Upvoters) > 0 || c.Upvotes > 0 {
		caps |= CapUpvoters
	}
	if c.DoneBy != nil {
		caps |= CapDoneBy
	}
	if c.Submission != nil {
		caps |= CapSubmission
	}
	if c.SourceRequest != nil {
		caps |= CapSourceRequest
	}
	if c.Campaign != nil {
		caps |= CapCampaign
	}
	if c.Streak != nil {
		caps |= CapStreak
	}
	if c.TopReader != nil {
		caps |= CapTopReader
	}
	if c.Award != nil {
		caps |= CapAward
	}
	if c.Organization != nil {
		caps |= CapOrganization
	}
	if c.Analytics != nil {
		caps |= CapAnalytics
	}
	if !c.RemindAt.IsZero() {
		caps |= CapReminder
	}
	return caps
}

// satisfies returns a descriptive error naming every missing capability. A
// failure here is a programmer error in the caller, not a runtime condition.
func (c *Context) satisfies(required Capability) error {
	missing := required &^ c.capabilities()
	if missing == 0 {
		return nil
	}
	var names []string
	for cap, name := range capabilityNames {
		if missing&cap != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return fmt.Errorf("%w: %s", ErrMissingCapability, strings.Join(names, ", "))
}

// displayPost resolves the post whose title/id user-facing text should use:
// the shared post for share wrappers, the post itself otherwise.
func (c *Context) displayPost() *Post {
	if c.Post != nil && c.Post.IsShare() && c.SharedPost != nil {
		return c.SharedPost
	}
	return c.Post
}
