package repository

import (
	"errors"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

var (
	ErrCohortNotFound  = errors.New("cohort not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidReferral = errors.New("invalid referral code")
	ErrCohortFull      = errors.New("cohort is full")
	ErrNotConvener     = errors.New("only the cohort's convener can change it")
)

// SandboxRepository defines the data operations behind the sandbox API.
type SandboxRepository interface {
	GetUser(id string) (*entity.User, error)
	UpdateUser(u *entity.User) error
	Users() []entity.User

	ListCohorts(userID string) []entity.Cohort
	GetCohort(id string) (*entity.Cohort, error)
	// CreateCohort, UpdateCohort and DeleteCohort fail with ErrNotConvener
	// unless convenerID created the cohort or convenes its community.
	CreateCohort(convenerID string, c *entity.Cohort) error
	UpdateCohort(convenerID string, c *entity.Cohort) error
	DeleteCohort(convenerID, id string) error
	JoinCohort(userID, referral string) (*entity.Cohort, error)
	CohortMembers(cohortID string) ([]entity.Member, error)

	ListCommunities(convenerID string) []entity.Community
	JoinedCommunities(userID string) []entity.Community
	CommunityCohorts(communityID string) []entity.Cohort
	Programmes(communityID string) []entity.Programme
	Modules(programmeID string) []entity.Module
	Lessons(moduleID string) []entity.Lesson

	Posts(cohortID string) ([]entity.Post, error)
	CreatePost(cohortID, userID, text string) (*entity.Post, error)
	Comments(postID string) ([]entity.Comment, error)
	CreateComment(postID, userID string, in entity.CreateCommentRequest) (*entity.Comment, error)
}
