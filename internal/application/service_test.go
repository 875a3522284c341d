package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/cohortly/internal/application/query"
	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/infrastructure/memory"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Cohorts(ctx context.Context) ([]entity.Cohort, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Cohort), args.Error(1)
}

func (m *mockAPI) Cohort(ctx context.Context, cohortID string) (*entity.Cohort, error) {
	args := m.Called(ctx, cohortID)
	c, _ := args.Get(0).(*entity.Cohort)
	return c, args.Error(1)
}

func (m *mockAPI) CohortMembers(ctx context.Context, cohortID string) ([]entity.Member, error) {
	args := m.Called(ctx, cohortID)
	return args.Get(0).([]entity.Member), args.Error(1)
}

func (m *mockAPI) CreateCohort(ctx context.Context, in entity.Cohort) (*entity.Cohort, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*entity.Cohort)
	return c, args.Error(1)
}

func (m *mockAPI) UpdateCohort(ctx context.Context, cohortID string, in entity.Cohort) (*entity.Cohort, error) {
	args := m.Called(ctx, cohortID, in)
	c, _ := args.Get(0).(*entity.Cohort)
	return c, args.Error(1)
}

func (m *mockAPI) DeleteCohort(ctx context.Context, cohortID string) error {
	return m.Called(ctx, cohortID).Error(0)
}

func (m *mockAPI) JoinCohort(ctx context.Context, referral string) (*entity.Cohort, error) {
	args := m.Called(ctx, referral)
	c, _ := args.Get(0).(*entity.Cohort)
	return c, args.Error(1)
}

func (m *mockAPI) Communities(ctx context.Context) ([]entity.Community, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Community), args.Error(1)
}

func (m *mockAPI) JoinedCommunities(ctx context.Context) ([]entity.Community, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Community)
	return c, args.Error(1)
}

func (m *mockAPI) CommunityCohorts(ctx context.Context, communityID string) ([]entity.Cohort, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]entity.Cohort), args.Error(1)
}

func (m *mockAPI) Programmes(ctx context.Context, communityID string) ([]entity.Programme, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]entity.Programme), args.Error(1)
}

func (m *mockAPI) Modules(ctx context.Context, programmeID string) ([]entity.Module, error) {
	args := m.Called(ctx, programmeID)
	return args.Get(0).([]entity.Module), args.Error(1)
}

func (m *mockAPI) Lessons(ctx context.Context, moduleID string) ([]entity.Lesson, error) {
	args := m.Called(ctx, moduleID)
	return args.Get(0).([]entity.Lesson), args.Error(1)
}

func (m *mockAPI) Posts(ctx context.Context, cohortID string) ([]entity.Post, error) {
	args := m.Called(ctx, cohortID)
	return args.Get(0).([]entity.Post), args.Error(1)
}

func (m *mockAPI) CreatePost(ctx context.Context, cohortID, text string) (*entity.Post, error) {
	args := m.Called(ctx, cohortID, text)
	p, _ := args.Get(0).(*entity.Post)
	return p, args.Error(1)
}

func (m *mockAPI) Comments(ctx context.Context, postID string) ([]entity.Comment, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).([]entity.Comment), args.Error(1)
}

func (m *mockAPI) CreateComment(ctx context.Context, postID string, in entity.CreateCommentRequest) (*entity.Comment, error) {
	args := m.Called(ctx, postID, in)
	c, _ := args.Get(0).(*entity.Comment)
	return c, args.Error(1)
}

func (m *mockAPI) Profile(ctx context.Context) (*entity.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockAPI) UpdateProfile(ctx context.Context, form entity.ProfileFormData) (*entity.UpdateProfileResponse, error) {
	args := m.Called(ctx, form)
	r, _ := args.Get(0).(*entity.UpdateProfileResponse)
	return r, args.Error(1)
}

func newService(t *testing.T) (*Service, *mockAPI) {
	t.Helper()
	cache, err := memory.NewQueryCache(64)
	require.NoError(t, err)
	api := &mockAPI{}
	t.Cleanup(func() { api.AssertExpectations(t) })
	qc := query.NewClient(query.Config{Cache: cache, Logger: helpers.NopLogger()})
	return NewService(api, qc, helpers.NopLogger()), api
}

var anyCtx = mock.Anything

func TestService_QueriesUseResourceOptions(t *testing.T) {
	s, _ := newService(t)

	cases := []struct {
		key  string
		opts query.Options
		got  func() (string, query.Options)
	}{
		{"cohorts", CohortsOptions, func() (string, query.Options) { q := s.Cohorts(); return q.Key(), q.Options() }},
		{"cohort/c1", CohortOptions, func() (string, query.Options) { q := s.Cohort("c1"); return q.Key(), q.Options() }},
		{"cohort-members/c1", CohortMembersOptions, func() (string, query.Options) { q := s.CohortMembers("c1"); return q.Key(), q.Options() }},
		{"posts/c1", PostsOptions, func() (string, query.Options) { q := s.Posts("c1"); return q.Key(), q.Options() }},
		{"comments/p1", CommentsOptions, func() (string, query.Options) { q := s.Comments("p1"); return q.Key(), q.Options() }},
		{"communities", CommunitiesOptions, func() (string, query.Options) { q := s.Communities(); return q.Key(), q.Options() }},
		{"joined-communities", JoinedCommunitiesOptions, func() (string, query.Options) { q := s.JoinedCommunities(); return q.Key(), q.Options() }},
		{"community-cohorts/m1", CommunityCohortsOptions, func() (string, query.Options) { q := s.CommunityCohorts("m1"); return q.Key(), q.Options() }},
		{"programmes/m1", ProgrammesOptions, func() (string, query.Options) { q := s.Programmes("m1"); return q.Key(), q.Options() }},
		{"modules/g1", ModulesOptions, func() (string, query.Options) { q := s.Modules("g1"); return q.Key(), q.Options() }},
		{"lessons/d1", LessonsOptions, func() (string, query.Options) { q := s.Lessons("d1"); return q.Key(), q.Options() }},
		{"profile", ProfileOptions, func() (string, query.Options) { q := s.Profile(); return q.Key(), q.Options() }},
	}
	for _, tc := range cases {
		key, opts := tc.got()
		assert.Equal(t, tc.key, key)
		assert.Equal(t, tc.opts, opts, tc.key)
	}
}

func TestResourceOptions(t *testing.T) {
	assert.Equal(t, query.Options{RefetchInterval: 15 * time.Second, StaleTime: 5 * time.Second, RefetchOnReconnect: true}, PostsOptions)
	assert.Equal(t, query.Options{StaleTime: 10 * time.Minute, RefetchOnReconnect: true}, ProfileOptions)
	assert.Zero(t, ModulesOptions.RefetchInterval)
	assert.False(t, CommentsOptions.RefetchOnReconnect)
}

func TestService_CohortsCached(t *testing.T) {
	s, api := newService(t)
	api.On("Cohorts", anyCtx).Return([]entity.Cohort{{ID: "c1"}}, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := s.Cohorts().Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "c1", got[0].ID)
	}
}

func TestService_CreateCohortInvalidates(t *testing.T) {
	s, api := newService(t)
	in := entity.Cohort{Name: "Summer", Description: "d", StartDate: "2026-06-01", EndDate: "2026-08-01", MaxMembers: 5, CommunityID: "m1"}

	api.On("Cohorts", anyCtx).Return([]entity.Cohort{}, nil).Once()
	api.On("CommunityCohorts", anyCtx, "m1").Return([]entity.Cohort{}, nil).Once()
	api.On("CreateCohort", anyCtx, in).Return(&entity.Cohort{ID: "c9", Name: "Summer"}, nil).Once()
	api.On("Cohorts", anyCtx).Return([]entity.Cohort{{ID: "c9"}}, nil).Once()
	api.On("CommunityCohorts", anyCtx, "m1").Return([]entity.Cohort{{ID: "c9"}}, nil).Once()

	ctx := context.Background()
	_, _ = s.Cohorts().Get(ctx)
	_, _ = s.CommunityCohorts("m1").Get(ctx)

	created, err := s.CreateCohort().Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "c9", created.ID)

	got, _ := s.Cohorts().Get(ctx)
	assert.Len(t, got, 1)
	got, _ = s.CommunityCohorts("m1").Get(ctx)
	assert.Len(t, got, 1)
}

func TestService_CreateCohortValidatesFirst(t *testing.T) {
	s, api := newService(t)

	_, err := s.CreateCohort().Execute(context.Background(), entity.Cohort{Name: "x"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "is required", verr.Fields["description"])
	api.AssertNotCalled(t, "CreateCohort", mock.Anything, mock.Anything)
}

func TestService_DeleteCohortFailureKeepsCache(t *testing.T) {
	s, api := newService(t)
	boom := errors.New("failed to delete cohort")

	api.On("Cohort", anyCtx, "c1").Return(&entity.Cohort{ID: "c1"}, nil).Once()
	api.On("DeleteCohort", anyCtx, "c1").Return(boom).Once()

	ctx := context.Background()
	_, _ = s.Cohort("c1").Get(ctx)
	_, err := s.DeleteCohort().Execute(ctx, "c1")
	assert.Equal(t, boom, err)

	got, err := s.Cohort("c1").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
}

func TestService_CreatePostInvalidatesOnlyItsCohort(t *testing.T) {
	s, api := newService(t)
	ctx := context.Background()

	api.On("Posts", anyCtx, "c1").Return([]entity.Post{}, nil).Twice()
	api.On("Posts", anyCtx, "c2").Return([]entity.Post{}, nil).Once()
	api.On("CreatePost", anyCtx, "c1", "hello").Return(&entity.Post{ID: "p1", Text: "hello"}, nil).Once()

	_, _ = s.Posts("c1").Get(ctx)
	_, _ = s.Posts("c2").Get(ctx)
	_, err := s.CreatePost().Execute(ctx, CreatePostInput{CohortID: "c1", Text: "hello"})
	require.NoError(t, err)
	_, _ = s.Posts("c1").Get(ctx)
	_, _ = s.Posts("c2").Get(ctx)
}

func TestService_CommentsAndPostsLeaveRulesToServer(t *testing.T) {
	s, api := newService(t)
	ctx := context.Background()
	rejected := errors.New("text is required")

	api.On("CreateComment", anyCtx, "p1", entity.CreateCommentRequest{}).Return(nil, rejected).Once()
	api.On("CreatePost", anyCtx, "c1", "").Return(nil, rejected).Once()

	_, err := s.CreateComment().Execute(ctx, CreateCommentInput{PostID: "p1"})
	assert.ErrorIs(t, err, rejected)
	_, err = s.CreatePost().Execute(ctx, CreatePostInput{CohortID: "c1"})
	assert.ErrorIs(t, err, rejected)
}

func TestService_UpdateProfile(t *testing.T) {
	s, api := newService(t)
	ctx := context.Background()

	// Only the server judges usernames.
	bad := entity.ProfileFormData{Username: "jane_doe"}
	api.On("UpdateProfile", anyCtx, bad).Return(&entity.UpdateProfileResponse{
		Error:   true,
		Message: entity.ProfileFieldErrors{Username: "must contain only letters and numbers"},
	}, nil).Once()
	res, err := s.UpdateProfile().Execute(ctx, bad)
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, "must contain only letters and numbers", res.Message.Username)

	form := entity.ProfileFormData{Bio: "Gopher"}
	api.On("Profile", anyCtx).Return(&entity.User{ID: "u1"}, nil).Once()
	api.On("UpdateProfile", anyCtx, form).Return(&entity.UpdateProfileResponse{User: &entity.User{ID: "u1", Bio: "Gopher"}}, nil).Once()
	api.On("Profile", anyCtx).Return(&entity.User{ID: "u1", Bio: "Gopher"}, nil).Once()

	_, _ = s.Profile().Get(ctx)
	res, err = s.UpdateProfile().Execute(ctx, form)
	require.NoError(t, err)
	assert.False(t, res.Error)
	u, _ := s.Profile().Get(ctx)
	assert.Equal(t, "Gopher", u.Bio)
}

func TestService_JoinCohortPropagates(t *testing.T) {
	s, api := newService(t)
	boom := errors.New("auth error")
	api.On("JoinCohort", anyCtx, "CODE").Return(nil, boom).Once()

	_, err := s.JoinCohort().Execute(context.Background(), "CODE")
	assert.ErrorIs(t, err, boom)
}
