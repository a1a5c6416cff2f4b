package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReviewBeforeCreateRatingBounds(t *testing.T) {
	review := Review{ProductID: 1, Rating: 0}
	require.ErrorIs(t, review.BeforeCreate(nil), ErrRatingOutOfRange)

	review.Rating = 6
	require.ErrorIs(t, review.BeforeCreate(nil), ErrRatingOutOfRange)

	for rating := 1; rating <= 5; rating++ {
		review.Rating = rating
		require.NoError(t, review.BeforeCreate(nil), "rating %d should be accepted", rating)
	}
}
