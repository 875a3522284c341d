package application

import (
	"context"

	"github.com/oksasatya/cohortly/internal/application/query"
	"github.com/oksasatya/cohortly/internal/domain/entity"
)

type UpdateCohortInput struct {
	CohortID string
	Cohort   entity.Cohort
}

type CreatePostInput struct {
	CohortID string
	Text     string
}

type CreateCommentInput struct {
	PostID string
	entity.CreateCommentRequest
}

// CreateCohort checks the required fields before sending; every other rule
// is the server's.
func (s *Service) CreateCohort() *query.Mutation[entity.Cohort, *entity.Cohort] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, in entity.Cohort) (*entity.Cohort, error) {
			if err := validate(in); err != nil {
				return nil, err
			}
			return s.API.CreateCohort(ctx, in)
		},
		func(entity.Cohort, *entity.Cohort) []string {
			return []string{KeyCohorts, KeyCommunityCohorts}
		})
}

func (s *Service) UpdateCohort() *query.Mutation[UpdateCohortInput, *entity.Cohort] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, in UpdateCohortInput) (*entity.Cohort, error) {
			if err := validate(in.Cohort); err != nil {
				return nil, err
			}
			return s.API.UpdateCohort(ctx, in.CohortID, in.Cohort)
		},
		func(in UpdateCohortInput, _ *entity.Cohort) []string {
			return []string{KeyCohorts, query.Key(KeyCohort, in.CohortID)}
		})
}

func (s *Service) DeleteCohort() *query.Mutation[string, struct{}] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, cohortID string) (struct{}, error) {
			return struct{}{}, s.API.DeleteCohort(ctx, cohortID)
		},
		func(cohortID string, _ struct{}) []string {
			return []string{KeyCohorts, query.Key(KeyCohort, cohortID)}
		})
}

// JoinCohort takes the referral code. The server decides whether it is valid.
func (s *Service) JoinCohort() *query.Mutation[string, *entity.Cohort] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, referral string) (*entity.Cohort, error) {
			return s.API.JoinCohort(ctx, referral)
		},
		func(string, *entity.Cohort) []string {
			return []string{KeyCohorts, KeyJoinedCommunities}
		})
}

func (s *Service) CreatePost() *query.Mutation[CreatePostInput, *entity.Post] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
			return s.API.CreatePost(ctx, in.CohortID, in.Text)
		},
		func(in CreatePostInput, _ *entity.Post) []string {
			return []string{query.Key(KeyPosts, in.CohortID)}
		})
}

func (s *Service) CreateComment() *query.Mutation[CreateCommentInput, *entity.Comment] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, in CreateCommentInput) (*entity.Comment, error) {
			return s.API.CreateComment(ctx, in.PostID, in.CreateCommentRequest)
		},
		func(in CreateCommentInput, _ *entity.Comment) []string {
			return []string{query.Key(KeyComments, in.PostID)}
		})
}

// UpdateProfile sends the form as typed; field errors come back from the
// server with Error set. Only a saved profile invalidates the cache.
func (s *Service) UpdateProfile() *query.Mutation[entity.ProfileFormData, *entity.UpdateProfileResponse] {
	return query.NewMutation(s.Queries,
		func(ctx context.Context, form entity.ProfileFormData) (*entity.UpdateProfileResponse, error) {
			return s.API.UpdateProfile(ctx, form)
		},
		func(_ entity.ProfileFormData, out *entity.UpdateProfileResponse) []string {
			if out == nil || out.Error {
				return nil
			}
			return []string{KeyProfile}
		})
}
