package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fan-Karwanta/motour-server-101/internal/domain"
)

type userAdminFixture struct {
	store   *fakeStore
	service *UserAdminService
	rater   *RatingService
	saved   *SavedDestinationService
}

func newUserAdminFixture() *userAdminFixture {
	store := newFakeStore()
	destinations := &fakeDestinationRepo{store: store}
	ratings := &fakeRatingRepo{store: store}
	rater := NewRatingService(ratings, destinations, nil)
	saved := NewSavedDestinationService(&fakeSavedRepo{store: store}, destinations)
	return &userAdminFixture{
		store:   store,
		rater:   rater,
		saved:   saved,
		service: NewUserAdminService(&fakeUserRepo{store: store}, ratings, saved, rater, nil),
	}
}

func TestUserAdminDeleteRecomputesRatedDestinations(t *testing.T) {
	f := newUserAdminFixture()
	ctx := context.Background()
	dest := f.store.addDestination("hundred-islands")
	leaving := f.store.addUser("eli")
	staying := f.store.addUser("flo")

	_, err := f.rater.UpsertRating(ctx, dest.ID, leaving.ID, RatingInput{Value: 1})
	require.NoError(t, err)
	_, err = f.rater.UpsertRating(ctx, dest.ID, staying.ID, RatingInput{Value: 5})
	require.NoError(t, err)
	_, err = f.saved.Toggle(ctx, leaving.ID, dest.ID)
	require.NoError(t, err)
	require.Equal(t, 3.0, f.store.average(dest.ID))

	require.NoError(t, f.service.Delete(ctx, leaving.ID))

	assert.Equal(t, 5.0, f.store.average(dest.ID))
	assert.Equal(t, 1, f.store.ratingCount(dest.ID))
	n, _ := f.saved.CountForDestination(ctx, dest.ID)
	assert.Zero(t, n)
	assert.ErrorIs(t, f.service.Delete(ctx, leaving.ID), ErrUserNotFound)
}

func TestUserAdminBlockAndFilter(t *testing.T) {
	f := newUserAdminFixture()
	ctx := context.Background()
	a := f.store.addUser("gia")
	f.store.addUser("hugo")

	blocked, err := f.service.Block(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, blocked.Blocked())

	users, page, err := f.service.List(ctx, UserQuery{Status: "blocked"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, int64(1), page.Total)

	unblocked, err := f.service.Unblock(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, unblocked.Status)

	_, _, err = f.service.List(ctx, UserQuery{Status: "banned"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUserAdminUpdate(t *testing.T) {
	f := newUserAdminFixture()
	ctx := context.Background()
	u := f.store.addUser("ira")
	verified := true

	updated, err := f.service.Update(ctx, u.ID, UserPatch{IsVerified: &verified, Location: strPtr(" Cebu ")})
	require.NoError(t, err)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, "Cebu", updated.Location)

	_, err = f.service.Update(ctx, u.ID, UserPatch{TripsCompleted: intPtr(-2)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
