package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pulsefeed/internal/common"
	"pulsefeed/internal/notif"
)

// Dispatcher routes decoded events to their handler. Handlers are thin: load
// entities, build a context, assemble, persist. All dedup and preference
// logic lives in the engine.
type Dispatcher struct {
	assembler *notif.Assembler
	engine    *notif.Engine
	loader    Loader
	handlers  map[string]func(ctx context.Context, ev *Event) error
}

func NewDispatcher(assembler *notif.Assembler, engine *notif.Engine, loader Loader) *Dispatcher {
	d := &Dispatcher{
		assembler: assembler,
		engine:    engine,
		loader:    loader,
	}
	d.handlers = map[string]func(ctx context.Context, ev *Event) error{
		EventPostAdded:         d.handlePostAdded,
		EventCommentReply:      d.handleCommentReply,
		EventCommentMention:    d.handleCommentMention,
		EventUserFollow:        d.handleUserFollow,
		EventUpvoteMilestone:   d.handleUpvoteMilestone,
		EventBookmarkReminder:  d.handleBookmarkReminder,
		EventSquadMemberJoined: d.handleSquadMemberJoined,
		EventAwardReceived:     d.handleAwardReceived,
	}
	return d
}

// Dispatch runs the handler for one event. Unknown event types and stale
// references are logged and swallowed so the transport can ack them; real
// failures propagate for redelivery, which the engine makes safe.
func (d *Dispatcher) Dispatch(ctx context.Context, ev *Event) error {
	handler, ok := d.handlers[ev.Type]
	if !ok {
		log.Printf("Skipping unknown event type: %s", ev.Type)
		return nil
	}
	err := handler(ctx, ev)
	if errors.Is(err, ErrNotFound) {
		log.Printf("Skipping stale event %s: %v", ev.Type, err)
		return nil
	}
	return err
}

// loadPostWithShare loads a post and, for share wrappers, its shared post.
func (d *Dispatcher) loadPostWithShare(ctx context.Context, postID string) (post, shared *notif.Post, err error) {
	post, err = d.loader.PostByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post.IsShare() && post.SharedPostID != "" {
		shared, err = d.loader.PostByID(ctx, post.SharedPostID)
		if err != nil {
			return nil, nil, err
		}
	}
	return post, shared, nil
}

// PickedBundles builds the scout/author bundles for a freshly added post. The
// scout gets community_picks_succeeded, the author article_picked; anyone who
// is the triggering actor is excluded, so a post with no scout or author
// distinct from the actor produces no bundles at all.
func (d *Dispatcher) PickedBundles(post, shared *notif.Post, actorID string) ([]*notif.Bundle, error) {
	var bundles []*notif.Bundle

	if post.ScoutID != "" && post.ScoutID != actorID {
		bundle, err := d.assembler.Assemble(common.CommunityPicksSucceeded, &notif.Context{
			UserIDs:    []string{post.ScoutID},
			Post:       post,
			SharedPost: shared,
		})
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	if post.AuthorID != "" && post.AuthorID != actorID && post.AuthorID != post.ScoutID {
		bundle, err := d.assembler.Assemble(common.ArticlePicked, &notif.Context{
			UserIDs:    []string{post.AuthorID},
			Post:       post,
			SharedPost: shared,
		})
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	return bundles, nil
}

// handlePostAdded produces up to four bundles for one post: scout and author
// congratulations, plus the subscriber and squad-member fanouts. The two
// fanout bundles share the post id as dedup key so overlapping audiences
// collapse onto one stored notification.
func (d *Dispatcher) handlePostAdded(ctx context.Context, ev *Event) error {
	post, shared, err := d.loadPostWithShare(ctx, ev.PostID)
	if err != nil {
		return err
	}

	picked, err := d.PickedBundles(post, shared, ev.ActorID)
	if err != nil {
		return err
	}
	if _, err := d.engine.Persist(ctx, picked, ""); err != nil {
		return err
	}

	source, err := d.loader.SourceByID(ctx, post.SourceID)
	if err != nil {
		return err
	}

	var fanout []*notif.Bundle

	subscribers, err := d.loader.SourceSubscriberIDs(ctx, source.ID)
	if err != nil {
		return err
	}
	if ids := exclude(subscribers, ev.ActorID); len(ids) > 0 {
		bundle, err := d.assembler.Assemble(common.SourcePostAdded, &notif.Context{
			UserIDs:    ids,
			Post:       post,
			SharedPost: shared,
			Source:     source,
		})
		if err != nil {
			return err
		}
		fanout = append(fanout, bundle)
	}

	if source.IsSquad() && ev.ActorID != "" {
		actor, err := d.loader.UserByID(ctx, ev.ActorID)
		if err != nil {
			return err
		}
		members, err := d.loader.SquadMemberIDs(ctx, source.ID)
		if err != nil {
			return err
		}
		if ids := exclude(members, ev.ActorID); len(ids) > 0 {
			bundle, err := d.assembler.Assemble(common.SquadPostAdded, &notif.Context{
				UserIDs:    ids,
				Post:       post,
				SharedPost: shared,
				Source:     source,
				DoneBy:     actor,
			})
			if err != nil {
				return err
			}
			fanout = append(fanout, bundle)
		}
	}

	_, err = d.engine.Persist(ctx, fanout, post.ID)
	return err
}

func (d *Dispatcher) handleCommentReply(ctx context.Context, ev *Event) error {
	reply, err := d.loader.CommentByID(ctx, ev.CommentID)
	if err != nil {
		return err
	}
	parent, err := d.loader.CommentByID(ctx, ev.ParentCommentID)
	if err != nil {
		return err
	}
	if parent.AuthorID == "" || parent.AuthorID == reply.AuthorID {
		return nil
	}

	commenter, err := d.loader.UserByID(ctx, reply.AuthorID)
	if err != nil {
		return err
	}
	post, shared, err := d.loadPostWithShare(ctx, reply.PostID)
	if err != nil {
		return err
	}
	source, err := d.loader.SourceByID(ctx, post.SourceID)
	if err != nil {
		return err
	}

	kind := common.CommentReply
	if source.IsSquad() {
		kind = common.SquadReply
	}
	bundle, err := d.assembler.Assemble(kind, &notif.Context{
		UserIDs:    []string{parent.AuthorID},
		Post:       post,
		SharedPost: shared,
		Source:     source,
		Comment:    reply,
		Commenter:  commenter,
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

func (d *Dispatcher) handleCommentMention(ctx context.Context, ev *Event) error {
	if ev.UserID == "" || ev.UserID == ev.ActorID {
		return nil
	}
	comment, err := d.loader.CommentByID(ctx, ev.CommentID)
	if err != nil {
		return err
	}
	commenter, err := d.loader.UserByID(ctx, comment.AuthorID)
	if err != nil {
		return err
	}
	post, shared, err := d.loadPostWithShare(ctx, comment.PostID)
	if err != nil {
		return err
	}

	bundle, err := d.assembler.Assemble(common.CommentMention, &notif.Context{
		UserIDs:    []string{ev.UserID},
		Post:       post,
		SharedPost: shared,
		Comment:    comment,
		Commenter:  commenter,
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

func (d *Dispatcher) handleUserFollow(ctx context.Context, ev *Event) error {
	if ev.UserID == "" || ev.UserID == ev.ActorID {
		return nil
	}
	follower, err := d.loader.UserByID(ctx, ev.ActorID)
	if err != nil {
		return err
	}
	bundle, err := d.assembler.Assemble(common.UserFollow, &notif.Context{
		UserIDs: []string{ev.UserID},
		DoneBy:  follower,
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

// handleUpvoteMilestone applies the milestone gate: counts off the allow-list
// never reach the template.
func (d *Dispatcher) handleUpvoteMilestone(ctx context.Context, ev *Event) error {
	if !common.IsUpvoteMilestone(ev.Upvotes) {
		return nil
	}
	post, shared, err := d.loadPostWithShare(ctx, ev.PostID)
	if err != nil {
		return err
	}
	if post.AuthorID == "" {
		return nil
	}
	upvoters, err := d.loader.RecentUpvoters(ctx, post.ID, 5)
	if err != nil {
		return err
	}

	bundle, err := d.assembler.Assemble(common.ArticleUpvoteMilestone, &notif.Context{
		UserIDs:    []string{post.AuthorID},
		Post:       post,
		SharedPost: shared,
		Upvoters:   upvoters,
		Upvotes:    ev.Upvotes,
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

func (d *Dispatcher) handleBookmarkReminder(ctx context.Context, ev *Event) error {
	if ev.UserID == "" || ev.RemindAtUnix == 0 {
		return fmt.Errorf("bookmark reminder event missing user or timestamp")
	}
	post, shared, err := d.loadPostWithShare(ctx, ev.PostID)
	if err != nil {
		return err
	}
	bundle, err := d.assembler.Assemble(common.PostBookmarkReminder, &notif.Context{
		UserIDs:    []string{ev.UserID},
		Post:       post,
		SharedPost: shared,
		RemindAt:   time.Unix(ev.RemindAtUnix, 0),
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

func (d *Dispatcher) handleSquadMemberJoined(ctx context.Context, ev *Event) error {
	source, err := d.loader.SourceByID(ctx, ev.SourceID)
	if err != nil {
		return err
	}
	if !source.IsSquad() {
		return nil
	}
	actor, err := d.loader.UserByID(ctx, ev.ActorID)
	if err != nil {
		return err
	}
	members, err := d.loader.SquadMemberIDs(ctx, source.ID)
	if err != nil {
		return err
	}

	bundle, err := d.assembler.Assemble(common.SquadMemberJoined, &notif.Context{
		UserIDs: exclude(members, ev.ActorID),
		Source:  source,
		DoneBy:  actor,
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

func (d *Dispatcher) handleAwardReceived(ctx context.Context, ev *Event) error {
	if ev.UserID == "" || ev.UserID == ev.ActorID {
		return nil
	}
	sender, err := d.loader.UserByID(ctx, ev.ActorID)
	if err != nil {
		return err
	}
	bundle, err := d.assembler.Assemble(common.UserReceivedAward, &notif.Context{
		UserIDs: []string{ev.UserID},
		DoneBy:  sender,
		Award: &notif.Award{
			TransactionID: ev.AwardID,
			Name:          ev.AwardName,
			Note:          ev.AwardNote,
			Amount:        ev.AwardAmount,
		},
	})
	if err != nil {
		return err
	}
	_, err = d.engine.Persist(ctx, []*notif.Bundle{bundle}, "")
	return err
}

// exclude drops one id from a fanout list.
func exclude(ids []string, drop string) []string {
	if drop == "" {
		return ids
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			kept = append(kept, id)
		}
	}
	return kept
}
