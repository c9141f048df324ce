package worker

// Domain event types carried on the notification stream. Producers publish
// one JSON-encoded Event per domain fact; the worker owns decoding and entity
// loading, the engine only ever sees hydrated contexts.
const (
	EventPostAdded         = "post.added"
	EventCommentReply      = "comment.reply"
	EventCommentMention    = "comment.mention"
	EventUserFollow        = "user.follow"
	EventUpvoteMilestone   = "post.upvote.milestone"
	EventBookmarkReminder  = "post.bookmark.reminder"
	EventSquadMemberJoined = "squad.member.joined"
	EventAwardReceived     = "user.award.received"
)

// Event is the wire shape of a domain event. Fields are a union across event
// types; each handler reads only the ones its type guarantees.
type Event struct {
	Type string `json:"type"`

	PostID          string `json:"post_id,omitempty"`
	CommentID       string `json:"comment_id,omitempty"`
	ParentCommentID string `json:"parent_comment_id,omitempty"`
	SourceID        string `json:"source_id,omitempty"`

	// ActorID is the user whose action triggered the event. Actors never
	// receive their own notifications.
	ActorID string `json:"actor_id,omitempty"`
	// UserID is the explicit recipient for events that carry one (follows,
	// awards, reminders).
	UserID string `json:"user_id,omitempty"`

	Upvotes      int    `json:"upvotes,omitempty"`
	RemindAtUnix int64  `json:"remind_at,omitempty"`
	AwardID      string `json:"award_id,omitempty"`
	AwardName    string `json:"award_name,omitempty"`
	AwardNote    string `json:"award_note,omitempty"`
	AwardAmount  int    `json:"award_amount,omitempty"`
}
