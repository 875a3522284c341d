package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/cohortly/internal/domain/entity"
)

func TestStruct_CohortRequiredFields(t *testing.T) {
	details := Struct(entity.Cohort{Name: "Spring"})

	assert.Equal(t, "is required", details["description"])
	assert.Equal(t, "is required", details["start_date"])
	assert.Equal(t, "is required", details["end_date"])
	assert.Equal(t, "is required", details["max_members"])
	assert.NotContains(t, details, "name")
	assert.NotContains(t, details, "url")
}

func TestStruct_ValidCohort(t *testing.T) {
	c := entity.Cohort{
		Name:        "Spring",
		Description: "Go in depth",
		StartDate:   "2026-01-10",
		EndDate:     "2026-03-10",
		MaxMembers:  30,
	}
	assert.Nil(t, Struct(c))
}

func TestStruct_Messages(t *testing.T) {
	type form struct {
		Username string `json:"username" validate:"omitempty,alphanum"`
		Password string `json:"password" validate:"omitempty,pwd"`
		Start    string `json:"start" validate:"omitempty,datetime=2006-01-02"`
		Seats    int    `json:"seats" validate:"omitempty,gt=0"`
	}
	details := Struct(form{Username: "a!", Password: "short", Start: "June", Seats: -1})

	assert.Equal(t, "must contain only letters and numbers", details["username"])
	assert.Equal(t, "must be at least 8 characters long", details["password"])
	assert.Equal(t, "must be a date formatted as 2006-01-02", details["start"])
	assert.Equal(t, "must be greater than 0", details["seats"])
	assert.Nil(t, Struct(form{}))
}

func TestToDetails_InvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{"), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
