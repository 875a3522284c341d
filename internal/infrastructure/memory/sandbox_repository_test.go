package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
)

func TestSeed_Visibility(t *testing.T) {
	r := NewSeededSandboxRepository()

	assert.Len(t, r.ListCohorts(SeedConvenerID), 3)
	learner := r.ListCohorts(SeedLearnerID)
	require.Len(t, learner, 1)
	assert.Equal(t, SeedCohortID, learner[0].ID)

	assert.Len(t, r.ListCommunities(SeedConvenerID), 2)
	assert.Empty(t, r.ListCommunities(SeedLearnerID))

	joined := r.JoinedCommunities(SeedLearnerID)
	require.Len(t, joined, 1)
	assert.Equal(t, SeedCommunityID, joined[0].ID)

	posts, err := r.Posts(SeedCohortID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Nil(t, posts[1].PostedBy)

	assert.Len(t, r.Modules(SeedProgrammeID), 2)
	assert.Len(t, r.Lessons(SeedModuleID), 2)
}

func TestJoinCohort(t *testing.T) {
	r := NewSeededSandboxRepository()
	r.AddUser(entity.User{ID: "u3", FirstName: "Ken"})
	r.AddUser(entity.User{ID: "u4", FirstName: "Rob"})

	_, err := r.JoinCohort(SeedLearnerID, "nope")
	assert.ErrorIs(t, err, repository.ErrInvalidReferral)

	c, err := r.JoinCohort(SeedLearnerID, "autumn26")
	require.NoError(t, err)
	assert.Equal(t, "coh_autumn", c.ID)

	_, err = r.JoinCohort(SeedLearnerID, "AUTUMN26")
	require.NoError(t, err, "joining twice is a no-op")

	_, err = r.JoinCohort("u3", "AUTUMN26")
	require.NoError(t, err)
	_, err = r.JoinCohort("u4", "AUTUMN26")
	assert.ErrorIs(t, err, repository.ErrCohortFull)

	members, err := r.CohortMembers("coh_autumn")
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestCohortLifecycle(t *testing.T) {
	r := NewSeededSandboxRepository()

	c := &entity.Cohort{CommunityID: SeedCommunityID, Name: "Summer", MaxMembers: 5}
	require.NoError(t, r.CreateCohort(SeedConvenerID, c))
	assert.NotEmpty(t, c.ID)
	assert.Len(t, c.Referral, 8)

	c.Name = "Summer 2026"
	c.Referral = ""
	require.NoError(t, r.UpdateCohort(SeedConvenerID, c))
	got, err := r.GetCohort(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer 2026", got.Name)
	assert.NotEmpty(t, got.Referral)

	require.NoError(t, r.DeleteCohort(SeedConvenerID, SeedCohortID))
	_, err = r.GetCohort(SeedCohortID)
	assert.ErrorIs(t, err, repository.ErrCohortNotFound)
	_, err = r.Comments(SeedPostID)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
	assert.ErrorIs(t, r.DeleteCohort(SeedConvenerID, SeedCohortID), repository.ErrCohortNotFound)
}

func TestCohortChangesNeedItsConvener(t *testing.T) {
	r := NewSeededSandboxRepository()
	r.AddUser(entity.User{ID: "usr_other", FirstName: "Ada", LastName: "Lovelace", Role: "convener"})
	r.AddCommunity(entity.Community{ID: "cmt_other", Name: "Analytical", ConvenerID: "usr_other"})

	c, err := r.GetCohort(SeedCohortID)
	require.NoError(t, err)
	c.Name = "Hijacked"
	assert.ErrorIs(t, r.UpdateCohort("usr_other", c), repository.ErrNotConvener)
	assert.ErrorIs(t, r.DeleteCohort("usr_other", SeedCohortID), repository.ErrNotConvener)
	assert.ErrorIs(t, r.CreateCohort("usr_other", &entity.Cohort{CommunityID: SeedCommunityID, Name: "x"}), repository.ErrNotConvener)

	got, err := r.GetCohort(SeedCohortID)
	require.NoError(t, err)
	assert.Equal(t, "Spring 2026", got.Name)

	// moving a cohort into someone else's community is refused too
	c.Name = "Spring 2026"
	c.CommunityID = "cmt_other"
	assert.ErrorIs(t, r.UpdateCohort(SeedConvenerID, c), repository.ErrNotConvener)

	// a cohort outside any community belongs to whoever created it
	own := &entity.Cohort{Name: "Side project", MaxMembers: 3}
	require.NoError(t, r.CreateCohort("usr_other", own))
	assert.ErrorIs(t, r.DeleteCohort(SeedConvenerID, own.ID), repository.ErrNotConvener)
	require.NoError(t, r.DeleteCohort("usr_other", own.ID))
}

func TestPostsAndComments(t *testing.T) {
	r := NewSeededSandboxRepository()

	p, err := r.CreatePost(SeedCohortID, SeedLearnerID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", p.AuthorName())

	anon, err := r.CreatePost(SeedCohortID, "ghost", "boo")
	require.NoError(t, err)
	assert.Nil(t, anon.PostedBy)

	cm, err := r.CreateComment(p.ID, SeedConvenerID, entity.CreateCommentRequest{Text: "nice", Media: "https://x.test/a.png"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, cm.PostID)
	assert.Equal(t, "Grace", cm.Author.FirstName)

	list, err := r.Comments(p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = r.CreatePost("missing", SeedLearnerID, "x")
	assert.ErrorIs(t, err, repository.ErrCohortNotFound)
}
