package notif

import "pulsefeed/internal/common"

// templateFunc is a pure derivation from context to bundle. Templates never
// touch storage and never error: missing optional data degrades the output
// instead (a user without a username loses the profile link, not the
// notification).
type templateFunc func(u URLs, c *Context) *Bundle

type template struct {
	requires Capability
	build    templateFunc
}

// templates is the registry: one entry per notification kind. Dispatch is a
// map lookup, not a type switch, so adding a kind is one constant plus one
// entry here.
var templates = map[common.NotificationKind]template{
	common.ArticlePicked:            {CapPost, articlePicked},
	common.ArticleNewComment:        {CapPost | CapComment | CapCommenter, articleNewComment},
	common.ArticleUpvoteMilestone:   {CapPost | CapUpvoters, articleUpvoteMilestone},
	common.ArticleReportApproved:    {CapPost, articleReportApproved},
	common.ArticleAnalytics:         {CapPost | CapAnalytics, articleAnalytics},
	common.SourceApproved:           {CapSubmission | CapSource, sourceApproved},
	common.SourceRejected:           {CapSubmission, sourceRejected},
	common.CommentMention:           {CapPost | CapComment | CapCommenter, commentMention},
	common.CommentReply:             {CapPost | CapComment | CapCommenter, commentReply},
	common.CommentUpvoteMilestone:   {CapComment | CapUpvoters, commentUpvoteMilestone},
	common.SquadPostAdded:           {CapPost | CapSource | CapDoneBy, squadPostAdded},
	common.SquadMemberJoined:        {CapSource | CapDoneBy, squadMemberJoined},
	common.SquadNewComment:          {CapPost | CapSource | CapComment | CapCommenter, squadNewComment},
	common.SquadReply:               {CapPost | CapSource | CapComment | CapCommenter, squadReply},
	common.SquadPostViewed:          {CapPost | CapSource | CapDoneBy, squadPostViewed},
	common.SquadAccess:              {CapSource, squadAccess},
	common.SquadBlocked:             {CapSource, squadBlocked},
	common.PromotedToAdmin:          {CapSource | CapDoneBy, promotedToAdmin},
	common.DemotedToMember:          {CapSource | CapDoneBy, demotedToMember},
	common.PromotedToModerator:      {CapSource | CapDoneBy, promotedToModerator},
	common.PostMention:              {CapPost | CapDoneBy, postMention},
	common.CollectionUpdated:        {CapPost, collectionUpdated},
	common.DevCardUnlocked:          {0, devCardUnlocked},
	common.SourcePostAdded:          {CapPost | CapSource, sourcePostAdded},
	common.SquadPublicSubmitted:     {CapSource | CapSourceRequest, squadPublicSubmitted},
	common.SquadPublicRejected:      {CapSource | CapSourceRequest, squadPublicRejected},
	common.SquadPublicApproved:      {CapSource | CapSourceRequest, squadPublicApproved},
	common.SquadFeatured:            {CapSource, squadFeatured},
	common.PostBookmarkReminder:     {CapPost | CapReminder, postBookmarkReminder},
	common.StreakResetRestore:       {CapStreak, streakResetRestore},
	common.UserPostAdded:            {CapPost | CapDoneBy, userPostAdded},
	common.UserGivenTopReader:       {CapTopReader, userGivenTopReader},
	common.UserReceivedAward:        {CapAward | CapDoneBy, userReceivedAward},
	common.OrganizationMemberJoined: {CapOrganization | CapDoneBy, organizationMemberJoined},
	common.OrganizationUserLeft:     {CapOrganization | CapDoneBy, organizationUserLeft},
	common.OrganizationUserRemoved:  {CapOrganization | CapDoneBy, organizationUserRemoved},
	common.BriefReady:               {CapPost, briefReady},
	common.UserFollow:               {CapDoneBy, userFollow},
	common.CampaignPostCompleted:    {CapCampaign | CapPost, campaignPostCompleted},
	common.CampaignCommentCompleted: {CapCampaign | CapComment, campaignCommentCompleted},
	common.CampaignSquadCompleted:   {CapCampaign | CapSource, campaignSquadCompleted},
	common.CommunityPicksFailed:     {CapSubmission, communityPicksFailed},
	common.CommunityPicksSucceeded:  {CapPost, communityPicksSucceeded},
	common.CommunityPicksGranted:    {0, communityPicksGranted},
	common.SubscriptionExpired:      {0, subscriptionExpired},
}

// maxUpvoterAvatars caps milestone avatar fanout to the most recent voters.
const maxUpvoterAvatars = 5

func userAvatar(u URLs, usr *User) AvatarDraft {
	return AvatarDraft{
		ReferenceID: usr.ID,
		Type:        common.AvatarUser,
		Image:       usr.Image,
		Name:        usr.Name,
		TargetURL:   u.User(usr.Username),
	}
}

// sourceAvatar links squads to their squad page and every other source to its
// source page.
func sourceAvatar(u URLs, s *Source) AvatarDraft {
	target := u.Source(s.Handle)
	if s.IsSquad() {
		target = u.Squad(s.Handle)
	}
	return AvatarDraft{
		ReferenceID: s.ID,
		Type:        common.AvatarSource,
		Image:       s.Image,
		Name:        s.Name,
		TargetURL:   target,
	}
}

// squadThenActor builds the canonical avatar order: the squad's source avatar
// first when the source is a squad, then the acting users.
func squadThenActor(u URLs, source *Source, actors ...*User) []AvatarDraft {
	var avatars []AvatarDraft
	if source != nil && source.IsSquad() {
		avatars = append(avatars, sourceAvatar(u, source))
	}
	for _, actor := range actors {
		if actor != nil {
			avatars = append(avatars, userAvatar(u, actor))
		}
	}
	return avatars
}

// upvoterAvatars takes the top upvoters by recency; Context.Upvoters is
// already ordered most recent first.
func upvoterAvatars(u URLs, voters []*User) []AvatarDraft {
	if len(voters) > maxUpvoterAvatars {
		voters = voters[:maxUpvoterAvatars]
	}
	avatars := make([]AvatarDraft, 0, len(voters))
	for _, voter := range voters {
		avatars = append(avatars, userAvatar(u, voter))
	}
	return avatars
}

// postAttachment derives the attachment from the post itself; video is a
// property of the post's media type, not a separate flag.
func postAttachment(p *Post) AttachmentDraft {
	attachmentType := common.AttachmentPost
	if p.MediaType == MediaTypeVideo {
		attachmentType = common.AttachmentVideo
	}
	return AttachmentDraft{
		ReferenceID: p.ID,
		Type:        attachmentType,
		Title:       p.Title,
		Image:       p.Image,
	}
}
