package entity

// Cohort is a time-boxed group of learners under a convener.
// Required fields are checked at submit time only; the server owns every
// other rule.
type Cohort struct {
	ID                 string `json:"id,omitempty"`
	CommunityID        string `json:"community_id,omitempty"`
	Name               string `json:"name" validate:"required"`
	Description        string `json:"description" validate:"required"`
	StartDate          string `json:"start_date" validate:"required"`
	EndDate            string `json:"end_date" validate:"required"`
	MaxMembers         int    `json:"max_members" validate:"required"`
	URL                string `json:"url,omitempty"`
	Goal               string `json:"goal,omitempty"`
	Referral           string `json:"referral,omitempty"`
	CommunityStructure string `json:"community_structure,omitempty"`
}

// Member is a user enrolled in a cohort.
type Member struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	JoinedAt  string `json:"joined_at,omitempty"`
}

// JoinCohortRequest carries the referral code a learner received.
type JoinCohortRequest struct {
	Referral string `json:"referral"`
}
