package common

// NotificationKind identifies one of the closed set of notification shapes the
// engine knows how to build. The set is append-only: renaming or removing a
// value would orphan persisted rows.
type NotificationKind string

const (
	ArticlePicked            NotificationKind = "article_picked"
	ArticleNewComment        NotificationKind = "article_new_comment"
	ArticleUpvoteMilestone   NotificationKind = "article_upvote_milestone"
	ArticleReportApproved    NotificationKind = "article_report_approved"
	ArticleAnalytics         NotificationKind = "article_analytics"
	SourceApproved           NotificationKind = "source_approved"
	SourceRejected           NotificationKind = "source_rejected"
	CommentMention           NotificationKind = "comment_mention"
	CommentReply             NotificationKind = "comment_reply"
	CommentUpvoteMilestone   NotificationKind = "comment_upvote_milestone"
	SquadPostAdded           NotificationKind = "squad_post_added"
	SquadMemberJoined        NotificationKind = "squad_member_joined"
	SquadNewComment          NotificationKind = "squad_new_comment"
	SquadReply               NotificationKind = "squad_reply"
	SquadPostViewed          NotificationKind = "squad_post_viewed"
	SquadAccess              NotificationKind = "squad_access"
	SquadBlocked             NotificationKind = "squad_blocked"
	PromotedToAdmin          NotificationKind = "promoted_to_admin"
	DemotedToMember          NotificationKind = "demoted_to_member"
	PromotedToModerator      NotificationKind = "promoted_to_moderator"
	PostMention              NotificationKind = "post_mention"
	CollectionUpdated        NotificationKind = "collection_updated"
	DevCardUnlocked          NotificationKind = "dev_card_unlocked"
	SourcePostAdded          NotificationKind = "source_post_added"
	SquadPublicSubmitted     NotificationKind = "squad_public_submitted"
	SquadPublicRejected      NotificationKind = "squad_public_rejected"
	SquadPublicApproved      NotificationKind = "squad_public_approved"
	SquadFeatured            NotificationKind = "squad_featured"
	PostBookmarkReminder     NotificationKind = "post_bookmark_reminder"
	StreakResetRestore       NotificationKind = "streak_reset_restore"
	UserPostAdded            NotificationKind = "user_post_added"
	UserGivenTopReader       NotificationKind = "user_given_top_reader"
	UserReceivedAward        NotificationKind = "user_received_award"
	OrganizationMemberJoined NotificationKind = "organization_member_joined"
	OrganizationUserLeft     NotificationKind = "organization_user_left"
	OrganizationUserRemoved  NotificationKind = "organization_user_removed"
	BriefReady               NotificationKind = "brief_ready"
	UserFollow               NotificationKind = "user_follow"
	CampaignPostCompleted    NotificationKind = "campaign_post_completed"
	CampaignCommentCompleted NotificationKind = "campaign_comment_completed"
	CampaignSquadCompleted   NotificationKind = "campaign_squad_completed"
	CommunityPicksFailed     NotificationKind = "community_picks_failed"
	CommunityPicksSucceeded  NotificationKind = "community_picks_succeeded"
	CommunityPicksGranted    NotificationKind = "community_picks_granted"
	SubscriptionExpired      NotificationKind = "subscription_expired"
)

// ReferenceType names the entity a notification is about.
type ReferenceType string

const (
	ReferencePost          ReferenceType = "post"
	ReferenceComment       ReferenceType = "comment"
	ReferenceSource        ReferenceType = "source"
	ReferenceUser          ReferenceType = "user"
	ReferenceSubmission    ReferenceType = "submission"
	ReferenceSourceRequest ReferenceType = "source_request"
	ReferenceCampaign      ReferenceType = "campaign"
	ReferenceOpportunity   ReferenceType = "opportunity"
	ReferenceModeration    ReferenceType = "post_moderation"
	ReferenceTopReader     ReferenceType = "user_top_reader"
	ReferenceStreak        ReferenceType = "streak"
	ReferenceOrganization  ReferenceType = "organization"
	ReferenceSystem        ReferenceType = "system"
)

// SystemReferenceID is the reference id used by kinds that are not about any
// particular entity (dev card, community picks access, subscription state).
const SystemReferenceID = "system"

type AvatarType string

const (
	AvatarUser           AvatarType = "user"
	AvatarSource         AvatarType = "source"
	AvatarTopReaderBadge AvatarType = "top_reader_badge"
	AvatarBrief          AvatarType = "brief"
	AvatarOrganization   AvatarType = "organization"
)

type AttachmentType string

const (
	AttachmentPost  AttachmentType = "post"
	AttachmentVideo AttachmentType = "video"
)

// Icon is a client-side rendering hint, not a URL.
type Icon string

const (
	IconBell      Icon = "bell"
	IconComment   Icon = "comment"
	IconUpvote    Icon = "upvote"
	IconBookmark  Icon = "bookmark"
	IconBlock     Icon = "block"
	IconAward     Icon = "award"
	IconAnalytics Icon = "analytics"
	IconTimer     Icon = "timer"
	IconStar      Icon = "star"
)

// Channel is a delivery surface. Only the in-app channel is consulted by the
// engine; push and email channels belong to downstream delivery systems.
type Channel string

const ChannelInApp Channel = "in_app"

type PreferenceStatus string

const (
	PreferenceSubscribed PreferenceStatus = "subscribed"
	PreferenceMuted      PreferenceStatus = "muted"
)

// Preference is one per-user, per-kind, per-channel subscription row. An empty
// ReferenceID means the preference applies to the kind globally; a non-empty
// one scopes it to a single source/post/entity.
type Preference struct {
	UserID      string
	Kind        NotificationKind
	ReferenceID string
	Channel     Channel
	Status      PreferenceStatus
}

// privateKinds lists the kinds whose notifications default to non-public
// visibility before any per-user preference is applied. Moderation-queue,
// analytics, and nudge kinds land here; social-engagement kinds stay public.
var privateKinds = map[NotificationKind]bool{
	ArticleAnalytics:         true,
	ArticleReportApproved:    true,
	SquadPublicSubmitted:     true,
	SquadPublicRejected:      true,
	CommunityPicksFailed:     true,
	StreakResetRestore:       true,
	SubscriptionExpired:      true,
	BriefReady:               true,
	CampaignPostCompleted:    true,
	CampaignCommentCompleted: true,
	CampaignSquadCompleted:   true,
}

// KindDefaultPublic reports the default visibility of a kind before the
// per-user preference override.
func KindDefaultPublic(kind NotificationKind) bool {
	return !privateKinds[kind]
}

// kindFamilies maps kinds onto their cross-event dedup family. Kinds sharing a
// family collapse onto one stored notification when persisted with the same
// dedup key. Every kind not listed here is its own family.
var kindFamilies = map[NotificationKind]string{
	SourcePostAdded: "post_added",
	SquadPostAdded:  "post_added",
}

// KindFamily returns the dedup family of a kind.
func KindFamily(kind NotificationKind) string {
	if family, ok := kindFamilies[kind]; ok {
		return family
	}
	return string(kind)
}

// UpvoteMilestones is the allow-list of upvote counts that produce a milestone
// notification. Callers gate on it before invoking the engine; milestone
// templates assume the count they receive is already on the list.
var UpvoteMilestones = []int{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// IsUpvoteMilestone reports whether count is on the milestone allow-list.
func IsUpvoteMilestone(count int) bool {
	for _, m := range UpvoteMilestones {
		if count == m {
			return true
		}
	}
	return false
}
