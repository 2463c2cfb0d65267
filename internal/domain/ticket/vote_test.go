package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVote(t *testing.T) {
	v, err := NewVote(1, 10, true)
	require.NoError(t, err)
	assert.True(t, v.IsUpvote())
	assert.Equal(t, VoteStateUpvote, v.State())

	_, err = NewVote(0, 10, true)
	assert.Error(t, err)
	_, err = NewVote(1, 0, true)
	assert.Error(t, err)
}

func TestVote_Flip(t *testing.T) {
	v, err := NewVote(1, 10, true)
	require.NoError(t, err)
	created := v.CreatedAt()

	v.Flip()
	assert.False(t, v.IsUpvote())
	assert.Equal(t, VoteStateDownvote, v.State())
	assert.Equal(t, created, v.CreatedAt(), "flip preserves createdAt")

	v.Flip()
	assert.Equal(t, VoteStateUpvote, v.State())
}

func TestVote_State_NilVote(t *testing.T) {
	var v *Vote
	assert.Equal(t, VoteStateNone, v.State())
}

func TestVoteTally_Score(t *testing.T) {
	testCases := []struct {
		name  string
		tally VoteTally
		want  int64
	}{
		{"empty", VoteTally{}, 0},
		{"net positive", VoteTally{Upvotes: 5, Downvotes: 2}, 3},
		{"net negative", VoteTally{Upvotes: 1, Downvotes: 4}, -3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.tally.Score())
		})
	}
}
