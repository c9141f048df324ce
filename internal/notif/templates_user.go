package notif

import (
	"fmt"
	"strconv"

	"pulsefeed/internal/common"
)

// userFollow references the follower, not the followed user: the notification
// is about who followed. The profile link degrades to the webapp root when the
// follower has no username.
func userFollow(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.DoneBy.ID,
			ReferenceType: common.ReferenceUser,
			Title:         fmt.Sprintf("%s started following you", bold(c.DoneBy.Name)),
			TargetURL:     u.User(c.DoneBy.Username),
			Icon:          common.IconBell,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{userAvatar(u, c.DoneBy)},
	}
}

func userPostAdded(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         fmt.Sprintf("%s published a new post", bold(c.DoneBy.Name)),
			Description:   post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconBell,
			UniqueKey:     c.DoneBy.ID,
		},
		UserIDs:     c.UserIDs,
		Avatars:     []AvatarDraft{userAvatar(u, c.DoneBy)},
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}

func userGivenTopReader(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.TopReader.ID,
			ReferenceType: common.ReferenceTopReader,
			Title: fmt.Sprintf("You are one of the top readers in %s this month!",
				bold(c.TopReader.Keyword)),
			TargetURL: u.Root(),
			Icon:      common.IconStar,
			UniqueKey: c.TopReader.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{{
			ReferenceID: c.TopReader.ID,
			Type:        common.AvatarTopReaderBadge,
			Image:       c.TopReader.Image,
			Name:        c.TopReader.Keyword,
			TargetURL:   u.Root(),
		}},
	}
}

func userReceivedAward(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Award.TransactionID,
			ReferenceType: common.ReferenceUser,
			Title:         fmt.Sprintf("%s sent you the %s award!", bold(c.DoneBy.Name), bold(c.Award.Name)),
			Description:   c.Award.Note,
			TargetURL:     u.User(c.DoneBy.Username),
			Icon:          common.IconAward,
			UniqueKey:     c.Award.TransactionID,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{userAvatar(u, c.DoneBy)},
	}
}

func organizationMemberJoined(u URLs, c *Context) *Bundle {
	return organizationMembership(u, c,
		fmt.Sprintf("%s joined %s", bold(c.DoneBy.Name), bold(c.Organization.Name)))
}

func organizationUserLeft(u URLs, c *Context) *Bundle {
	return organizationMembership(u, c,
		fmt.Sprintf("%s left %s", bold(c.DoneBy.Name), bold(c.Organization.Name)))
}

func organizationUserRemoved(u URLs, c *Context) *Bundle {
	return organizationMembership(u, c,
		fmt.Sprintf("%s was removed from %s", bold(c.DoneBy.Name), bold(c.Organization.Name)))
}

func organizationMembership(u URLs, c *Context, title string) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Organization.ID,
			ReferenceType: common.ReferenceOrganization,
			Title:         title,
			TargetURL:     u.Root(),
			Icon:          common.IconBell,
			UniqueKey:     c.DoneBy.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{
			{
				ReferenceID: c.Organization.ID,
				Type:        common.AvatarOrganization,
				Image:       c.Organization.Image,
				Name:        c.Organization.Name,
				TargetURL:   u.Root(),
			},
			userAvatar(u, c.DoneBy),
		},
	}
}

// streakResetRestore is a nudge: the user's own streak is the reference and
// the last-view date keys the nudge so one reset produces one notification.
func streakResetRestore(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Streak.UserID,
			ReferenceType: common.ReferenceStreak,
			Title: fmt.Sprintf("Oh no, your %s is gone. Restore it before it's too late!",
				bold(fmt.Sprintf("%d-day streak", c.Streak.Length))),
			TargetURL: u.StreakRestore(),
			Icon:      common.IconTimer,
			UniqueKey: strconv.FormatInt(c.Streak.LastViewAt.Unix(), 10),
		},
		UserIDs: c.UserIDs,
	}
}

func devCardUnlocked(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   common.SystemReferenceID,
			ReferenceType: common.ReferenceSystem,
			Title:         "Your DevCard is ready! Generate and share it with the world",
			TargetURL:     u.DevCard(),
			Icon:          common.IconStar,
		},
		UserIDs: c.UserIDs,
	}
}

func subscriptionExpired(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   common.SystemReferenceID,
			ReferenceType: common.ReferenceSystem,
			Title:         "Your Plus subscription has expired",
			Description:   "Renew to keep your personalized feed features.",
			TargetURL:     u.Plus(),
			Icon:          common.IconTimer,
		},
		UserIDs: c.UserIDs,
	}
}

func sourceApproved(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Submission.ID,
			ReferenceType: common.ReferenceSubmission,
			Title:         fmt.Sprintf("The source you suggested, %s, got approved!", bold(c.Source.Name)),
			TargetURL:     u.Source(c.Source.Handle),
			Icon:          common.IconStar,
			UniqueKey:     c.Submission.ID,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{sourceAvatar(u, c.Source)},
	}
}

func sourceRejected(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Submission.ID,
			ReferenceType: common.ReferenceSubmission,
			Title:         "The source you suggested was not approved this time",
			Description:   c.Submission.URL,
			TargetURL:     u.Submit(),
			Icon:          common.IconBlock,
			UniqueKey:     c.Submission.ID,
		},
		UserIDs: c.UserIDs,
	}
}

func communityPicksFailed(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Submission.ID,
			ReferenceType: common.ReferenceSubmission,
			Title:         "The post you scouted did not make it to the feed this time",
			Description:   c.Submission.URL,
			TargetURL:     u.Submit(),
			Icon:          common.IconBlock,
			UniqueKey:     c.Submission.ID,
		},
		UserIDs: c.UserIDs,
	}
}

func communityPicksGranted(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   common.SystemReferenceID,
			ReferenceType: common.ReferenceSystem,
			Title:         "You can now scout posts for the community feed!",
			TargetURL:     u.Submit(),
			Icon:          common.IconStar,
		},
		UserIDs: c.UserIDs,
	}
}

func campaignPostCompleted(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Campaign.ID,
			ReferenceType: common.ReferenceCampaign,
			Title:         "Your boosted post finished its run",
			Description:   post.Title,
			TargetURL:     u.Campaign(c.Campaign.ID),
			Icon:          common.IconAnalytics,
			UniqueKey:     c.Campaign.ID,
		},
		UserIDs:     c.UserIDs,
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}
