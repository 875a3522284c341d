package handlers

import "github.com/oksasatya/cohortly/internal/domain/entity"

// Request shapes accepted by the sandbox. The rules here belong to the
// server; clients send whatever the user typed.

type cohortRequest struct {
	CommunityID        string `json:"community_id"`
	Name               string `json:"name" validate:"required,max=100"`
	Description        string `json:"description" validate:"required,max=1000"`
	StartDate          string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string `json:"end_date" validate:"required,datetime=2006-01-02"`
	MaxMembers         int    `json:"max_members" validate:"required,gt=0"`
	URL                string `json:"url" validate:"omitempty,url"`
	Goal               string `json:"goal"`
	Referral           string `json:"referral" validate:"omitempty,alphanum,max=16"`
	CommunityStructure string `json:"community_structure"`
}

func (r cohortRequest) toEntity() *entity.Cohort {
	return &entity.Cohort{
		CommunityID:        r.CommunityID,
		Name:               r.Name,
		Description:        r.Description,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		MaxMembers:         r.MaxMembers,
		URL:                r.URL,
		Goal:               r.Goal,
		Referral:           r.Referral,
		CommunityStructure: r.CommunityStructure,
	}
}

type joinRequest struct {
	Referral string `json:"referral" validate:"required"`
}

type postRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type commentRequest struct {
	Text  string `json:"text" validate:"required,max=2000"`
	Media string `json:"media" validate:"omitempty,url"`
}

// profileForm is filled from the multipart form rather than bound.
type profileForm struct {
	FirstName string `json:"firstName" validate:"omitempty,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
	Username  string `json:"username" validate:"omitempty,alphanum,min=3,max=30"`
	Password  string `json:"password" validate:"omitempty,pwd"`
	Location  string `json:"location" validate:"omitempty,max=100"`
	Socials   string `json:"socials"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
}
