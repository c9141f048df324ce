package notif

import (
	"context"
	"testing"

	"pulsefeed/internal/common"
	"pulsefeed/internal/notifdb"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testEngine(t *testing.T) (*Engine, *notifdb.Storage, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One in-memory sqlite database per connection; keep the pool at one so
	// every statement sees the same schema.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(notifdb.Models()...))
	store := notifdb.NewStorage(db)
	return NewEngine(store), store, db
}

func articleBundle(userIDs ...string) *Bundle {
	return &Bundle{
		Draft: Draft{
			Kind:          common.ArticlePicked,
			ReferenceID:   "p1",
			ReferenceType: common.ReferencePost,
			Title:         "Well done! Your article got picked!",
			TargetURL:     "https://app.pulsefeed.dev/posts/p1",
			Icon:          common.IconStar,
			Public:        true,
		},
		UserIDs: userIDs,
		Avatars: []AvatarDraft{
			{ReferenceID: "s1", Type: common.AvatarSource, Name: "PulseFeed"},
		},
		Attachments: []AttachmentDraft{
			{ReferenceID: "p1", Type: common.AttachmentPost, Title: "Go generics in practice"},
		},
	}
}

func notificationCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&notifdb.Notification{}).Count(&count).Error)
	return count
}

func TestPersist_CreatesNotificationAndFanout(t *testing.T) {
	engine, store, _ := testEngine(t)
	ctx := context.Background()

	ids, err := engine.Persist(ctx, []*Bundle{articleBundle("1", "2")}, "")
	require.NoError(t, err)
	require.Len(t, ids, 1)

	rows, err := store.UserNotificationsFor(ctx, ids[0])
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.Public)
		assert.Nil(t, row.ReadAt)
	}

	avatars, err := store.AvatarsByNotification(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, avatars, 1)
	assert.Equal(t, common.AvatarSource, avatars[0].Type)

	attachments, err := store.AttachmentsByNotification(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, attachments, 1)
	assert.Equal(t, "Go generics in practice", attachments[0].Title)
}

func TestPersist_RedeliveryIsIdempotent(t *testing.T) {
	engine, store, db := testEngine(t)
	ctx := context.Background()

	first, err := engine.Persist(ctx, []*Bundle{articleBundle("1", "2")}, "")
	require.NoError(t, err)
	second, err := engine.Persist(ctx, []*Bundle{articleBundle("1", "2")}, "")
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0], second[0], "redelivery should resolve to the existing row")
	assert.Equal(t, int64(1), notificationCount(t, db))

	rows, err := store.UserNotificationsFor(ctx, first[0])
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	avatars, err := store.AvatarsByNotification(ctx, first[0])
	require.NoError(t, err)
	assert.Len(t, avatars, 1, "avatars belong to the first creation only")
}

func TestPersist_DedupKeyMergesKindFamily(t *testing.T) {
	engine, store, db := testEngine(t)
	ctx := context.Background()

	sourceBundle := &Bundle{
		Draft: Draft{
			Kind:          common.SourcePostAdded,
			ReferenceID:   "p1",
			ReferenceType: common.ReferencePost,
			Title:         "Conf Talks posted a new article",
			TargetURL:     "https://app.pulsefeed.dev/posts/p1",
			Icon:          common.IconBell,
			Public:        true,
			UniqueKey:     "s1",
		},
		UserIDs: []string{"1", "2"},
	}
	squadBundle := &Bundle{
		Draft: Draft{
			Kind:          common.SquadPostAdded,
			ReferenceID:   "p1",
			ReferenceType: common.ReferencePost,
			Title:         "Ada shared a new post on Gophers",
			TargetURL:     "https://app.pulsefeed.dev/posts/p1",
			Icon:          common.IconBell,
			Public:        true,
			UniqueKey:     "1",
		},
		UserIDs: []string{"2", "3"},
	}

	sourceIDs, err := engine.Persist(ctx, []*Bundle{sourceBundle}, "p1")
	require.NoError(t, err)
	squadIDs, err := engine.Persist(ctx, []*Bundle{squadBundle}, "p1")
	require.NoError(t, err)

	assert.Equal(t, sourceIDs[0], squadIDs[0], "kinds in one family should land on one row")
	assert.Equal(t, int64(1), notificationCount(t, db))

	var stored notifdb.Notification
	require.NoError(t, db.First(&stored, "id = ?", sourceIDs[0]).Error)
	assert.Equal(t, "post_added:dedup_p1:post", stored.UniqueKey)
	assert.Equal(t, common.SourcePostAdded, stored.Kind, "the first writer's content wins")

	rows, err := store.UserNotificationsFor(ctx, sourceIDs[0])
	require.NoError(t, err)
	assert.Len(t, rows, 3, "fanout sets should merge across the two events")
}

func TestPersist_MutedUserStillGetsNonPublicRow(t *testing.T) {
	engine, store, _ := testEngine(t)
	ctx := context.Background()

	require.NoError(t, store.SetPreference(ctx, "2", common.ArticlePicked, "", common.ChannelInApp, common.PreferenceMuted))

	ids, err := engine.Persist(ctx, []*Bundle{articleBundle("1", "2")}, "")
	require.NoError(t, err)

	rows, err := store.UserNotificationsFor(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byUser := make(map[string]bool, len(rows))
	for _, row := range rows {
		byUser[row.UserID] = row.Public
	}
	assert.True(t, byUser["1"])
	assert.False(t, byUser["2"], "muted user keeps the row but never surfaces it")
}

func TestPersist_NothingToWrite(t *testing.T) {
	engine, _, db := testEngine(t)
	ctx := context.Background()

	ids, err := engine.Persist(ctx, nil, "")
	require.NoError(t, err)
	assert.Nil(t, ids)

	empty := articleBundle()
	ids, err = engine.Persist(ctx, []*Bundle{nil, empty}, "")
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Equal(t, int64(0), notificationCount(t, db))
}

func TestPersist_DistinctUniqueKeysStaySeparate(t *testing.T) {
	engine, _, db := testEngine(t)
	ctx := context.Background()

	milestone := func(upvotes string) *Bundle {
		b := articleBundle("1")
		b.Draft.Kind = common.ArticleUpvoteMilestone
		b.Draft.UniqueKey = upvotes
		return b
	}

	_, err := engine.Persist(ctx, []*Bundle{milestone("5")}, "")
	require.NoError(t, err)
	_, err = engine.Persist(ctx, []*Bundle{milestone("10")}, "")
	require.NoError(t, err)

	assert.Equal(t, int64(2), notificationCount(t, db), "each milestone is its own notification")
}
