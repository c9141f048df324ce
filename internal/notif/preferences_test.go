package notif

import (
	"context"
	"errors"
	"testing"

	"pulsefeed/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPreferenceReader struct {
	mock.Mock
}

func (m *MockPreferenceReader) PreferencesFor(
	ctx context.Context,
	userIDs []string,
	kind common.NotificationKind,
	referenceID string,
	channel common.Channel,
) ([]common.Preference, error) {
	args := m.Called(ctx, userIDs, kind, referenceID, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Preference), args.Error(1)
}

func TestVisible_DefaultsToSubscribed(t *testing.T) {
	reader := new(MockPreferenceReader)
	reader.On("PreferencesFor", mock.Anything, []string{"1", "2"}, common.CommentReply, "p1", common.ChannelInApp).
		Return([]common.Preference{}, nil)

	visible, err := NewPreferences(reader).Visible(context.Background(), []string{"1", "2"}, common.CommentReply, "p1")

	require.NoError(t, err)
	assert.True(t, visible["1"])
	assert.True(t, visible["2"])
	reader.AssertExpectations(t)
}

func TestVisible_GlobalMuteHidesKind(t *testing.T) {
	reader := new(MockPreferenceReader)
	reader.On("PreferencesFor", mock.Anything, mock.Anything, common.CommentReply, "p1", common.ChannelInApp).
		Return([]common.Preference{
			{UserID: "1", Kind: common.CommentReply, Channel: common.ChannelInApp, Status: common.PreferenceMuted},
		}, nil)

	visible, err := NewPreferences(reader).Visible(context.Background(), []string{"1", "2"}, common.CommentReply, "p1")

	require.NoError(t, err)
	assert.False(t, visible["1"])
	assert.True(t, visible["2"])
}

func TestVisible_MostSpecificScopeWins(t *testing.T) {
	// A reference-scoped subscribe overrides a kind-global mute, whichever
	// order the rows come back in.
	rows := []common.Preference{
		{UserID: "1", Kind: common.CommentReply, ReferenceID: "p1", Channel: common.ChannelInApp, Status: common.PreferenceSubscribed},
		{UserID: "1", Kind: common.CommentReply, ReferenceID: "", Channel: common.ChannelInApp, Status: common.PreferenceMuted},
		{UserID: "2", Kind: common.CommentReply, ReferenceID: "", Channel: common.ChannelInApp, Status: common.PreferenceSubscribed},
		{UserID: "2", Kind: common.CommentReply, ReferenceID: "p1", Channel: common.ChannelInApp, Status: common.PreferenceMuted},
	}
	reader := new(MockPreferenceReader)
	reader.On("PreferencesFor", mock.Anything, mock.Anything, common.CommentReply, "p1", common.ChannelInApp).
		Return(rows, nil)

	visible, err := NewPreferences(reader).Visible(context.Background(), []string{"1", "2"}, common.CommentReply, "p1")

	require.NoError(t, err)
	assert.True(t, visible["1"], "scoped subscribe should beat global mute")
	assert.False(t, visible["2"], "scoped mute should beat global subscribe")
}

func TestVisible_ReaderErrorPropagates(t *testing.T) {
	reader := new(MockPreferenceReader)
	reader.On("PreferencesFor", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection lost"))

	_, err := NewPreferences(reader).Visible(context.Background(), []string{"1"}, common.CommentReply, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
}

func TestVisible_NoUsersSkipsLookup(t *testing.T) {
	reader := new(MockPreferenceReader)

	visible, err := NewPreferences(reader).Visible(context.Background(), nil, common.CommentReply, "")

	require.NoError(t, err)
	assert.Empty(t, visible)
	reader.AssertNotCalled(t, "PreferencesFor")
}
