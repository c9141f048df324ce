package notifdb

import (
	"context"
	"testing"

	"pulsefeed/internal/common"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStorage(t *testing.T) *Storage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(Models()...))
	return NewStorage(db)
}

func sampleNotification() *Notification {
	return &Notification{
		ID:            uuid.NewString(),
		Kind:          common.UserFollow,
		ReferenceType: common.ReferenceUser,
		ReferenceID:   "1",
		Title:         "Ada started following you",
		TargetURL:     "https://app.pulsefeed.dev/ada",
		Icon:          common.IconBell,
		Public:        true,
	}
}

func TestUpsertNotification_ConflictLoadsExisting(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	first := sampleNotification()
	created, err := store.UpsertNotification(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	second := sampleNotification()
	created, err = store.UpsertNotification(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID, "conflicting insert should adopt the winner's id")
}

func TestUpsertNotification_DistinctUniqueKeys(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	first := sampleNotification()
	first.UniqueKey = "5"
	_, err := store.UpsertNotification(ctx, first)
	require.NoError(t, err)

	second := sampleNotification()
	second.UniqueKey = "10"
	created, err := store.UpsertNotification(ctx, second)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUpsertUserNotification_DuplicateIsNoOp(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	n := sampleNotification()
	_, err := store.UpsertNotification(ctx, n)
	require.NoError(t, err)

	require.NoError(t, store.UpsertUserNotification(ctx, &UserNotification{UserID: "2", NotificationID: n.ID, Public: true}))
	require.NoError(t, store.UpsertUserNotification(ctx, &UserNotification{UserID: "2", NotificationID: n.ID, Public: false}))

	rows, err := store.UserNotificationsFor(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Public, "redelivered fanout must not rewrite the original row")
}

func TestMarkAsReadAndUnreadCount(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	public := sampleNotification()
	_, err := store.UpsertNotification(ctx, public)
	require.NoError(t, err)

	private := sampleNotification()
	private.ReferenceID = "9"
	private.Public = false
	_, err = store.UpsertNotification(ctx, private)
	require.NoError(t, err)

	require.NoError(t, store.UpsertUserNotification(ctx, &UserNotification{UserID: "2", NotificationID: public.ID, Public: true}))
	require.NoError(t, store.UpsertUserNotification(ctx, &UserNotification{UserID: "2", NotificationID: private.ID, Public: false}))

	count, err := store.UnreadCount(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "non-surfaced rows never count as unread")

	require.NoError(t, store.MarkAsRead(ctx, "2", public.ID))
	count, err = store.UnreadCount(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	rows, err := store.UserNotificationsFor(ctx, public.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].ReadAt)
	readAt := *rows[0].ReadAt

	// Marking again keeps the original read time.
	require.NoError(t, store.MarkAsRead(ctx, "2", public.ID))
	rows, err = store.UserNotificationsFor(ctx, public.ID)
	require.NoError(t, err)
	require.NotNil(t, rows[0].ReadAt)
	assert.Equal(t, readAt.Unix(), rows[0].ReadAt.Unix())
}

func TestPreferences_SetUpdateAndClear(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SetPreference(ctx, "2", common.CommentReply, "", common.ChannelInApp, common.PreferenceMuted))
	require.NoError(t, store.SetPreference(ctx, "2", common.CommentReply, "p1", common.ChannelInApp, common.PreferenceSubscribed))

	prefs, err := store.PreferencesFor(ctx, []string{"2"}, common.CommentReply, "p1", common.ChannelInApp)
	require.NoError(t, err)
	assert.Len(t, prefs, 2, "both the global and the reference scope should come back")

	// Upsert flips status in place instead of adding a row.
	require.NoError(t, store.SetPreference(ctx, "2", common.CommentReply, "", common.ChannelInApp, common.PreferenceSubscribed))
	prefs, err = store.PreferencesFor(ctx, []string{"2"}, common.CommentReply, "", common.ChannelInApp)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, common.PreferenceSubscribed, prefs[0].Status)

	require.NoError(t, store.ClearPreference(ctx, "2", common.CommentReply, "", common.ChannelInApp))
	prefs, err = store.PreferencesFor(ctx, []string{"2"}, common.CommentReply, "", common.ChannelInApp)
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestPreferencesFor_ScopesOtherReferencesOut(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SetPreference(ctx, "2", common.CommentReply, "p1", common.ChannelInApp, common.PreferenceMuted))
	require.NoError(t, store.SetPreference(ctx, "2", common.CommentReply, "p2", common.ChannelInApp, common.PreferenceMuted))

	prefs, err := store.PreferencesFor(ctx, []string{"2"}, common.CommentReply, "p1", common.ChannelInApp)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, "p1", prefs[0].ReferenceID)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	store := testStorage(t)
	ctx := context.Background()

	wantErr := assert.AnError
	err := store.Transaction(ctx, func(tx *Storage) error {
		n := sampleNotification()
		if _, err := tx.UpsertNotification(ctx, n); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	var count int64
	require.NoError(t, store.db.Model(&Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
