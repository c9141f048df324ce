package notif

import (
	"fmt"
	"strconv"

	"pulsefeed/internal/common"
)

func articleNewComment(u URLs, c *Context) *Bundle {
	return commentOnPost(u, c, fmt.Sprintf("%s commented on your post", bold(c.Commenter.Name)))
}

func squadNewComment(u URLs, c *Context) *Bundle {
	return commentOnPost(u, c, fmt.Sprintf("%s commented on the post you shared", bold(c.Commenter.Name)))
}

func commentReply(u URLs, c *Context) *Bundle {
	return commentOnPost(u, c, fmt.Sprintf("%s replied to your comment", bold(c.Commenter.Name)))
}

func squadReply(u URLs, c *Context) *Bundle {
	return commentOnPost(u, c, fmt.Sprintf("%s replied to your comment", bold(c.Commenter.Name)))
}

func commentMention(u URLs, c *Context) *Bundle {
	return commentOnPost(u, c, fmt.Sprintf("%s mentioned you in a comment", bold(c.Commenter.Name)))
}

// commentOnPost is the shared shape of every comment-driven kind: the comment
// is the reference, the target is the comment anchor on the post page, and the
// description is an excerpt of the comment body. Avatar order is squad source
// first, then the commenter.
func commentOnPost(u URLs, c *Context, title string) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Comment.ID,
			ReferenceType: common.ReferenceComment,
			Title:         title,
			Description:   excerpt(c.Comment.Content),
			TargetURL:     u.PostComment(c.Comment.PostID, c.Comment.ID),
			Icon:          common.IconComment,
		},
		UserIDs: c.UserIDs,
		Avatars: squadThenActor(u, c.Source, c.Commenter),
	}
}

func commentUpvoteMilestone(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Comment.ID,
			ReferenceType: common.ReferenceComment,
			Title: fmt.Sprintf("You rock! Your comment earned %s!",
				bold(fmt.Sprintf("%d upvotes", c.Upvotes))),
			Description: excerpt(c.Comment.Content),
			TargetURL:   u.PostComment(c.Comment.PostID, c.Comment.ID),
			Icon:        common.IconUpvote,
			UniqueKey:   strconv.Itoa(c.Upvotes),
		},
		UserIDs: c.UserIDs,
		Avatars: upvoterAvatars(u, c.Upvoters),
	}
}

func campaignCommentCompleted(u URLs, c *Context) *Bundle {
	return &Bundle{
		Draft: Draft{
			ReferenceID:   c.Campaign.ID,
			ReferenceType: common.ReferenceCampaign,
			Title:         "Your boosted comment finished its run",
			Description:   excerpt(c.Comment.Content),
			TargetURL:     u.Campaign(c.Campaign.ID),
			Icon:          common.IconAnalytics,
			UniqueKey:     c.Campaign.ID,
		},
		UserIDs: c.UserIDs,
	}
}
