package notif

import (
	"fmt"

	"pulsefeed/internal/common"
)

// squadPostAdded fans out to squad members. UniqueKey is the acting user id:
// the same member re-sharing the same post does not produce a second row.
func squadPostAdded(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title: fmt.Sprintf("%s shared a new post on %s",
				bold(c.DoneBy.Name), bold(c.Source.Name)),
			Description: post.Title,
			TargetURL:   u.Post(c.Post.ID),
			Icon:        common.IconBell,
			UniqueKey:   c.DoneBy.ID,
		},
		UserIDs:     c.UserIDs,
		Avatars:     squadThenActor(u, c.Source, c.DoneBy),
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}

func squadMemberJoined(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Source.ID,
			ReferenceType: common.ReferenceSource,
			Title: fmt.Sprintf("Say hello to %s, the newest member of %s!",
				bold(c.DoneBy.Name), bold(c.Source.Name)),
			TargetURL: u.Squad(c.Source.Handle),
			Icon:      common.IconBell,
			UniqueKey: c.DoneBy.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source, c.DoneBy),
	}
}

func squadPostViewed(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         fmt.Sprintf("%s viewed the post you shared", bold(c.DoneBy.Name)),
			Description:   post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconBell,
			UniqueKey:     c.DoneBy.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source, c.DoneBy),
	}
}

func squadAccess(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Source.ID,
			ReferenceType: common.ReferenceSource,
			Title:         fmt.Sprintf("You now have access to %s", bold(c.Source.Name)),
			TargetURL:     u.Squad(c.Source.Handle),
			Icon:          common.IconBell,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source),
	}
}

func squadBlocked(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Source.ID,
			ReferenceType: common.ReferenceSource,
			Title:         fmt.Sprintf("You are no longer part of %s", bold(c.Source.Name)),
			TargetURL:     u.Root(),
			Icon:          common.IconBlock,
		},
		UserIDs: c.UserIDs,
	}
}

func promotedToAdmin(u URLs, c *Context) *Bundle {
	return squadRoleChange(u, c,
		fmt.Sprintf("Congrats! You are now an %s of %s", bold("admin"), bold(c.Source.Name)),
		u.SquadSettings(c.Source.Handle))
}

func demotedToMember(u URLs, c *Context) *Bundle {
	return squadRoleChange(u, c,
		fmt.Sprintf("You are no longer a moderator of %s", bold(c.Source.Name)),
		u.Squad(c.Source.Handle))
}

func promotedToModerator(u URLs, c *Context) *Bundle {
	return squadRoleChange(u, c,
		fmt.Sprintf("You are now a %s of %s", bold("moderator"), bold(c.Source.Name)),
		u.SquadModeration(c.Source.Handle))
}

// squadRoleChange is the shared shape of role transitions: the squad is the
// reference and the acting admin is recorded in the unique key so repeated
// promotions by the same admin collapse.
func squadRoleChange(u URLs, c *Context, title, target string) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Source.ID,
			ReferenceType: common.ReferenceSource,
			Title:         title,
			TargetURL:     target,
			Icon:          common.IconStar,
			UniqueKey:     c.DoneBy.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source, c.DoneBy),
	}
}

func squadPublicSubmitted(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.SourceRequest.ID,
			ReferenceType: common.ReferenceSourceRequest,
			Title: fmt.Sprintf("Your request to make %s public is under review",
				bold(c.Source.Name)),
			TargetURL: u.Squad(c.Source.Handle),
			Icon:      common.IconTimer,
			UniqueKey: c.SourceRequest.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source),
	}
}

func squadPublicRejected(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.SourceRequest.ID,
			ReferenceType: common.ReferenceSourceRequest,
			Title: fmt.Sprintf("Your request to make %s public was not approved this time",
				bold(c.Source.Name)),
			TargetURL: u.Squad(c.Source.Handle),
			Icon:      common.IconBlock,
			UniqueKey: c.SourceRequest.ID,
		},
		UserIDs: c.UserIDs,
	}
}

func squadPublicApproved(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.SourceRequest.ID,
			ReferenceType: common.ReferenceSourceRequest,
			Title:         fmt.Sprintf("Congrats! %s is now public", bold(c.Source.Name)),
			TargetURL:     u.Squad(c.Source.Handle),
			Icon:          common.IconStar,
			UniqueKey:     c.SourceRequest.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source),
	}
}

func squadFeatured(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Source.ID,
			ReferenceType: common.ReferenceSource,
			Title:         fmt.Sprintf("%s got featured in the squad directory", bold(c.Source.Name)),
			TargetURL:     u.Squad(c.Source.Handle),
			Icon:          common.IconStar,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source),
	}
}

func campaignSquadCompleted(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Campaign.ID,
			ReferenceType: common.ReferenceCampaign,
			Title:         fmt.Sprintf("Your campaign for %s finished its run", bold(c.Source.Name)),
			TargetURL:     u.Campaign(c.Campaign.ID),
			Icon:          common.IconAnalytics,
			UniqueKey:     c.Campaign.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source),
	}
}
