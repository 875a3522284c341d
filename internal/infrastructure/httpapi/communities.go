package httpapi

import (
	"context"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

// Communities lists the communities the token's owner convenes.
func (c *Client) Communities(ctx context.Context) ([]entity.Community, error) {
	list, err := get[[]entity.Community](ctx, c, EndpointCommunities, []entity.Community{})
	return nonNilOnSuccess(list, err)
}

// JoinedCommunities lists the communities the token's owner is a member of.
// Failures are returned unchanged.
func (c *Client) JoinedCommunities(ctx context.Context) ([]entity.Community, error) {
	list, err := get[[]entity.Community](ctx, c, EndpointJoinedCommunities, nil)
	return nonNilOnSuccess(list, err)
}

func (c *Client) CommunityCohorts(ctx context.Context, communityID string) ([]entity.Cohort, error) {
	list, err := get[[]entity.Cohort](ctx, c, EndpointCommunityCohorts, []entity.Cohort{}, communityID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) Programmes(ctx context.Context, communityID string) ([]entity.Programme, error) {
	list, err := get[[]entity.Programme](ctx, c, EndpointProgrammes, []entity.Programme{}, communityID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) Modules(ctx context.Context, programmeID string) ([]entity.Module, error) {
	list, err := get[[]entity.Module](ctx, c, EndpointModules, nil, programmeID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) Lessons(ctx context.Context, moduleID string) ([]entity.Lesson, error) {
	list, err := get[[]entity.Lesson](ctx, c, EndpointLessons, []entity.Lesson{}, moduleID)
	return nonNilOnSuccess(list, err)
}
