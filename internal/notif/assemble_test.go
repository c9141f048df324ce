package notif

import (
	"testing"

	"pulsefeed/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAssembler() *Assembler {
	return NewAssembler(NewURLs("https://app.pulsefeed.dev"))
}

func TestAssemble_UnknownKind(t *testing.T) {
	a := testAssembler()

	bundle, err := a.Assemble(common.NotificationKind("bogus"), &Context{UserIDs: []string{"1"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Nil(t, bundle)
}

func TestAssemble_MissingCapabilityFailsFast(t *testing.T) {
	a := testAssembler()

	// comment_reply needs post, comment, and commenter; give it nothing.
	bundle, err := a.Assemble(common.CommentReply, &Context{UserIDs: []string{"1"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCapability)
	assert.Contains(t, err.Error(), "comment")
	assert.Contains(t, err.Error(), "commenter")
	assert.Contains(t, err.Error(), "post")
	assert.Nil(t, bundle)
}

func TestAssemble_DedupesTargetUsers(t *testing.T) {
	a := testAssembler()

	bundle, err := a.Assemble(common.UserFollow, &Context{
		UserIDs: []string{"2", "2", "", "3", "2"},
		DoneBy:  &User{ID: "1", Name: "Ada", Username: "ada"},
	})

	require.NoError(t, err)
	require.NotNil(t, bundle)
	assert.Equal(t, []string{"2", "3"}, bundle.UserIDs)
}

func TestAssemble_EmptyFanoutYieldsNilBundle(t *testing.T) {
	a := testAssembler()

	bundle, err := a.Assemble(common.UserFollow, &Context{
		UserIDs: nil,
		DoneBy:  &User{ID: "1", Name: "Ada", Username: "ada"},
	})

	require.NoError(t, err)
	assert.Nil(t, bundle)
}

func TestAssemble_StampsKindAndDefaultVisibility(t *testing.T) {
	a := testAssembler()

	public, err := a.Assemble(common.UserFollow, &Context{
		UserIDs: []string{"2"},
		DoneBy:  &User{ID: "1", Name: "Ada", Username: "ada"},
	})
	require.NoError(t, err)
	assert.Equal(t, common.UserFollow, public.Draft.Kind)
	assert.True(t, public.Draft.Public)

	private, err := a.Assemble(common.ArticleAnalytics, &Context{
		UserIDs:   []string{"2"},
		Post:      &Post{ID: "p1", Title: "Post", AuthorID: "2"},
		Analytics: &PostAnalytics{Impressions: 1234, Period: "2026-08"},
	})
	require.NoError(t, err)
	assert.False(t, private.Draft.Public)
}
