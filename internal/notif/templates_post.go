package notif

import (
	"fmt"
	"strconv"

	"pulsefeed/internal/common"
)

func articlePicked(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "Congrats! Your post got picked for the main feed!",
			Description:   post.Title,
			TargetURL:     u.Post(post.ID),
			Icon:          common.IconBell,
		},
		UserIDs:     c.UserIDs,
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}

func articleUpvoteMilestone(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title: fmt.Sprintf("You rock! Your post %s earned %s!",
				bold(post.Title), bold(fmt.Sprintf("%d upvotes", c.Upvotes))),
			TargetURL: u.Post(post.ID),
			Icon:      common.IconUpvote,
			UniqueKey: strconv.Itoa(c.Upvotes),
		},
		UserIDs: c.UserIDs,
		Avatars: upvoterAvatars(u, c.Upvoters),
	}
}

func articleReportApproved(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "A post you reported was taken down. Thanks for keeping the feed clean!",
			TargetURL:     u.Root(),
			Icon:          common.IconBlock,
		},
		UserIDs: c.UserIDs,
	}
}

func articleAnalytics(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title: fmt.Sprintf("Your post reached %s!",
				bold(FormatCount(c.Analytics.Impressions)+" impressions")),
			Description: c.Post.Title,
			TargetURL:   u.PostAnalytics(c.Post.ID),
			Icon:        common.IconAnalytics,
			UniqueKey:   c.Analytics.Period,
		},
		UserIDs: c.UserIDs,
	}
}

func postMention(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         fmt.Sprintf("%s mentioned you in a post", bold(c.DoneBy.Name)),
			Description:   post.Title,
			TargetURL:     u.Post(post.ID),
			Icon:          common.IconBell,
		},
		UserIDs:     c.UserIDs,
		Avatars:     squadThenActor(u, c.Source, c.DoneBy),
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}

func collectionUpdated(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "A collection you follow just got updated with new details",
			Description:   c.Post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconBell,
		},
		UserIDs:     c.UserIDs,
		Attachments: []AttachmentDraft{postAttachment(c.Post)},
	}
}

// postBookmarkReminder references the bookmarked wrapper post but takes all
// user-facing text and the target from the shared post when the bookmark is a
// share. UniqueKey is the reminder timestamp so re-scheduling the same
// reminder collapses.
func postBookmarkReminder(u URLs, c *Context) *Bundle {
	post := c.displayPost()
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "Don't forget to read your bookmark!",
			Description:   post.Title,
			TargetURL:     u.Post(post.ID),
			Icon:          common.IconBookmark,
			UniqueKey:     strconv.FormatInt(c.RemindAt.Unix(), 10),
		},
		UserIDs:     c.UserIDs,
		Attachments: []AttachmentDraft{postAttachment(post)},
	}
}

// sourcePostAdded fans out to the source's subscribers. UniqueKey is the
// source id: repeated triggers of the same post from the same source collapse.
func sourcePostAdded(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         fmt.Sprintf("%s posted a new article", bold(c.Source.Name)),
			Description:   c.Post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconBell,
			UniqueKey:     c.Source.ID,
		},
		UserIDs:     c.UserIDs,
		Avatars:     []AvatarDraft{sourceAvatar(u, c.Source)},
		Attachments: []AttachmentDraft{postAttachment(c.Post)},
	}
}

func communityPicksSucceeded(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "The post you scouted made it to the feed. Great find!",
			Description:   c.Post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconStar,
		},
		UserIDs:     c.UserIDs,
		Attachments: []AttachmentDraft{postAttachment(c.Post)},
	}
}

func briefReady(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Post.ID,
			ReferenceType: common.ReferencePost,
			Title:         "Your briefing is ready",
			Description:   c.Post.Title,
			TargetURL:     u.Post(c.Post.ID),
			Icon:          common.IconBell,
		},
		UserIDs: c.UserIDs,
		Avatars: []AvatarDraft{{
			ReferenceID: c.Post.ID,
			Type:        common.AvatarBrief,
			Image:       c.Post.Image,
			Name:        c.Post.Title,
			TargetURL:   u.Post(c.Post.ID),
		}},
	}
}
