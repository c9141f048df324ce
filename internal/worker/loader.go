package worker

import (
	"context"
	"errors"
	"fmt"

	"pulsefeed/internal/notif"

	"gorm.io/gorm"
)

// Loader hydrates engine contexts from the primary store. The platform owns
// these tables; the worker only ever reads them.
type Loader interface {
	PostByID(ctx context.Context, id string) (*notif.Post, error)
	UserByID(ctx context.Context, id string) (*notif.User, error)
	SourceByID(ctx context.Context, id string) (*notif.Source, error)
	CommentByID(ctx context.Context, id string) (*notif.Comment, error)
	// SourceSubscriberIDs returns the users following a source's feed.
	SourceSubscriberIDs(ctx context.Context, sourceID string) ([]string, error)
	// SquadMemberIDs returns the members of a squad source.
	SquadMemberIDs(ctx context.Context, sourceID string) ([]string, error)
	// RecentUpvoters returns a post's upvoters, most recent first.
	RecentUpvoters(ctx context.Context, postID string, limit int) ([]*notif.User, error)
}

// ErrNotFound marks a referenced entity that no longer exists; handlers treat
// it as a stale event, not a failure.
var ErrNotFound = errors.New("entity not found")

// Read-only projections of platform tables. Column sets are the minimum the
// templates consume.

type postRow struct {
	ID           string
	Title        string
	Image        string
	AuthorID     string
	ScoutID      string
	SourceID     string
	Type         string
	MediaType    string
	SharedPostID string
}

func (postRow) TableName() string { return "posts" }

type userRow struct {
	ID       string
	Name     string
	Username string
	Image    string
}

func (userRow) TableName() string { return "users" }

type sourceRow struct {
	ID     string
	Name   string
	Handle string
	Image  string
	Type   string
}

func (sourceRow) TableName() string { return "sources" }

type commentRow struct {
	ID       string
	PostID   string
	AuthorID string
	Content  string
}

func (commentRow) TableName() string { return "comments" }

type sourceSubscriptionRow struct {
	UserID   string
	SourceID string
}

func (sourceSubscriptionRow) TableName() string { return "source_subscriptions" }

type squadMemberRow struct {
	UserID   string
	SourceID string
}

func (squadMemberRow) TableName() string { return "squad_members" }

type upvoteRow struct {
	UserID string
	PostID string
}

func (upvoteRow) TableName() string { return "post_upvotes" }

type dbLoader struct {
	db *gorm.DB
}

// NewLoader returns a Loader backed by the primary store.
func NewLoader(db *gorm.DB) Loader {
	return &dbLoader{db: db}
}

func (l *dbLoader) PostByID(ctx context.Context, id string) (*notif.Post, error) {
	var row postRow
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapNotFound(err, "post", id)
	}
	return &notif.Post{
		ID:           row.ID,
		Title:        row.Title,
		Image:        row.Image,
		AuthorID:     row.AuthorID,
		ScoutID:      row.ScoutID,
		SourceID:     row.SourceID,
		Type:         row.Type,
		MediaType:    row.MediaType,
		SharedPostID: row.SharedPostID,
	}, nil
}

func (l *dbLoader) UserByID(ctx context.Context, id string) (*notif.User, error) {
	var row userRow
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapNotFound(err, "user", id)
	}
	return &notif.User{ID: row.ID, Name: row.Name, Username: row.Username, Image: row.Image}, nil
}

func (l *dbLoader) SourceByID(ctx context.Context, id string) (*notif.Source, error) {
	var row sourceRow
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapNotFound(err, "source", id)
	}
	return &notif.Source{ID: row.ID, Name: row.Name, Handle: row.Handle, Image: row.Image, Type: row.Type}, nil
}

func (l *dbLoader) CommentByID(ctx context.Context, id string) (*notif.Comment, error) {
	var row commentRow
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, wrapNotFound(err, "comment", id)
	}
	return &notif.Comment{ID: row.ID, PostID: row.PostID, AuthorID: row.AuthorID, Content: row.Content}, nil
}

func (l *dbLoader) SourceSubscriberIDs(ctx context.Context, sourceID string) ([]string, error) {
	var ids []string
	err := l.db.WithContext(ctx).
		Model(&sourceSubscriptionRow{}).
		Where("source_id = ?", sourceID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load source subscribers: %w", err)
	}
	return ids, nil
}

func (l *dbLoader) SquadMemberIDs(ctx context.Context, sourceID string) ([]string, error) {
	var ids []string
	err := l.db.WithContext(ctx).
		Model(&squadMemberRow{}).
		Where("source_id = ?", sourceID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load squad members: %w", err)
	}
	return ids, nil
}

func (l *dbLoader) RecentUpvoters(ctx context.Context, postID string, limit int) ([]*notif.User, error) {
	var rows []userRow
	err := l.db.WithContext(ctx).
		Table("users").
		Joins("JOIN post_upvotes ON post_upvotes.user_id = users.id").
		Where("post_upvotes.post_id = ?", postID).
		Order("post_upvotes.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load upvoters: %w", err)
	}
	users := make([]*notif.User, len(rows))
	for i, row := range rows {
		users[i] = &notif.User{ID: row.ID, Name: row.Name, Username: row.Username, Image: row.Image}
	}
	return users, nil
}

func wrapNotFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", entity, id, err)
}
