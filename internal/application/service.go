package application

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/application/query"
	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/pkg/validation"
)

// API is the remote surface the hooks run against. *httpapi.Client
// implements it.
type API interface {
	Cohorts(ctx context.Context) ([]entity.Cohort, error)
	Cohort(ctx context.Context, cohortID string) (*entity.Cohort, error)
	CohortMembers(ctx context.Context, cohortID string) ([]entity.Member, error)
	CreateCohort(ctx context.Context, in entity.Cohort) (*entity.Cohort, error)
	UpdateCohort(ctx context.Context, cohortID string, in entity.Cohort) (*entity.Cohort, error)
	DeleteCohort(ctx context.Context, cohortID string) error
	JoinCohort(ctx context.Context, referral string) (*entity.Cohort, error)

	Communities(ctx context.Context) ([]entity.Community, error)
	JoinedCommunities(ctx context.Context) ([]entity.Community, error)
	CommunityCohorts(ctx context.Context, communityID string) ([]entity.Cohort, error)
	Programmes(ctx context.Context, communityID string) ([]entity.Programme, error)
	Modules(ctx context.Context, programmeID string) ([]entity.Module, error)
	Lessons(ctx context.Context, moduleID string) ([]entity.Lesson, error)

	Posts(ctx context.Context, cohortID string) ([]entity.Post, error)
	CreatePost(ctx context.Context, cohortID, text string) (*entity.Post, error)
	Comments(ctx context.Context, postID string) ([]entity.Comment, error)
	CreateComment(ctx context.Context, postID string, in entity.CreateCommentRequest) (*entity.Comment, error)

	Profile(ctx context.Context) (*entity.User, error)
	UpdateProfile(ctx context.Context, form entity.ProfileFormData) (*entity.UpdateProfileResponse, error)
}

// ValidationError is returned by a mutation whose input fails the
// submit-time checks; no request is sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func validate(in any) error {
	if details := validation.Struct(in); details != nil {
		return &ValidationError{Fields: details}
	}
	return nil
}

// Service binds every API operation to a query or mutation with its
// resource options.
type Service struct {
	API     API
	Queries *query.Client
	Logger  *logrus.Logger
}

func NewService(api API, queries *query.Client, logger *logrus.Logger) *Service {
	return &Service{API: api, Queries: queries, Logger: logger}
}

func (s *Service) Cohorts() *query.Query[[]entity.Cohort] {
	return query.New(s.Queries, KeyCohorts, CohortsOptions, s.API.Cohorts)
}

func (s *Service) Cohort(cohortID string) *query.Query[*entity.Cohort] {
	return query.New(s.Queries, query.Key(KeyCohort, cohortID), CohortOptions,
		func(ctx context.Context) (*entity.Cohort, error) { return s.API.Cohort(ctx, cohortID) })
}

func (s *Service) CohortMembers(cohortID string) *query.Query[[]entity.Member] {
	return query.New(s.Queries, query.Key(KeyCohortMembers, cohortID), CohortMembersOptions,
		func(ctx context.Context) ([]entity.Member, error) { return s.API.CohortMembers(ctx, cohortID) })
}

func (s *Service) Posts(cohortID string) *query.Query[[]entity.Post] {
	return query.New(s.Queries, query.Key(KeyPosts, cohortID), PostsOptions,
		func(ctx context.Context) ([]entity.Post, error) { return s.API.Posts(ctx, cohortID) })
}

func (s *Service) Comments(postID string) *query.Query[[]entity.Comment] {
	return query.New(s.Queries, query.Key(KeyComments, postID), CommentsOptions,
		func(ctx context.Context) ([]entity.Comment, error) { return s.API.Comments(ctx, postID) })
}

func (s *Service) Communities() *query.Query[[]entity.Community] {
	return query.New(s.Queries, KeyCommunities, CommunitiesOptions, s.API.Communities)
}

func (s *Service) JoinedCommunities() *query.Query[[]entity.Community] {
	return query.New(s.Queries, KeyJoinedCommunities, JoinedCommunitiesOptions, s.API.JoinedCommunities)
}

func (s *Service) CommunityCohorts(communityID string) *query.Query[[]entity.Cohort] {
	return query.New(s.Queries, query.Key(KeyCommunityCohorts, communityID), CommunityCohortsOptions,
		func(ctx context.Context) ([]entity.Cohort, error) { return s.API.CommunityCohorts(ctx, communityID) })
}

func (s *Service) Programmes(communityID string) *query.Query[[]entity.Programme] {
	return query.New(s.Queries, query.Key(KeyProgrammes, communityID), ProgrammesOptions,
		func(ctx context.Context) ([]entity.Programme, error) { return s.API.Programmes(ctx, communityID) })
}

func (s *Service) Modules(programmeID string) *query.Query[[]entity.Module] {
	return query.New(s.Queries, query.Key(KeyModules, programmeID), ModulesOptions,
		func(ctx context.Context) ([]entity.Module, error) { return s.API.Modules(ctx, programmeID) })
}

func (s *Service) Lessons(moduleID string) *query.Query[[]entity.Lesson] {
	return query.New(s.Queries, query.Key(KeyLessons, moduleID), LessonsOptions,
		func(ctx context.Context) ([]entity.Lesson, error) { return s.API.Lessons(ctx, moduleID) })
}

func (s *Service) Profile() *query.Query[*entity.User] {
	return query.New(s.Queries, KeyProfile, ProfileOptions, s.API.Profile)
}
