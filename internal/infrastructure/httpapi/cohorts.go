package httpapi

import (
	"context"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

// Cohorts lists the cohorts visible to the token's owner.
func (c *Client) Cohorts(ctx context.Context) ([]entity.Cohort, error) {
	list, err := get[[]entity.Cohort](ctx, c, EndpointCohorts, []entity.Cohort{})
	return nonNilOnSuccess(list, err)
}

func (c *Client) Cohort(ctx context.Context, cohortID string) (*entity.Cohort, error) {
	return get[*entity.Cohort](ctx, c, EndpointCohort, nil, cohortID)
}

func (c *Client) CohortMembers(ctx context.Context, cohortID string) ([]entity.Member, error) {
	list, err := get[[]entity.Member](ctx, c, EndpointCohortMembers, []entity.Member{}, cohortID)
	return nonNilOnSuccess(list, err)
}

func (c *Client) CreateCohort(ctx context.Context, in entity.Cohort) (*entity.Cohort, error) {
	return send[*entity.Cohort](ctx, c, EndpointCreateCohort, in)
}

func (c *Client) UpdateCohort(ctx context.Context, cohortID string, in entity.Cohort) (*entity.Cohort, error) {
	return send[*entity.Cohort](ctx, c, EndpointUpdateCohort, in, cohortID)
}

func (c *Client) DeleteCohort(ctx context.Context, cohortID string) error {
	_, err := send[struct{}](ctx, c, EndpointDeleteCohort, nil, cohortID)
	return err
}

// JoinCohort enrolls the token's owner using a referral code.
func (c *Client) JoinCohort(ctx context.Context, referral string) (*entity.Cohort, error) {
	return send[*entity.Cohort](ctx, c, EndpointJoinCohort, entity.JoinCohortRequest{Referral: referral})
}

func nonNilOnSuccess[E any](list []E, err error) ([]E, error) {
	if err != nil {
		return list, err
	}
	return nonNil(list), nil
}
