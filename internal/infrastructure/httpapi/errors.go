package httpapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failed remote call.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindAuth
	KindServer
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindServer:
		return "server"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// APIError describes one failed call. Err holds the underlying transport or
// decoder error when there is one.
type APIError struct {
	Kind    ErrorKind
	Op      string
	Method  string
	URL     string
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if detail == "" && e.Status != 0 {
		detail = http.StatusText(e.Status)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s %s: %s error (%d): %s", e.Op, e.Method, e.URL, e.Kind, e.Status, detail)
	}
	return fmt.Sprintf("%s: %s %s: %s error: %s", e.Op, e.Method, e.URL, e.Kind, detail)
}

func (e *APIError) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or 0 when err is not an *APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func kindForStatus(status int) ErrorKind {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return KindAuth
	}
	return KindServer
}

// Fixed errors returned by endpoints that rethrow. They carry no detail of
// the original failure.
var (
	ErrFetchCohorts          = errors.New("failed to fetch cohorts")
	ErrFetchCohort           = errors.New("failed to fetch cohort")
	ErrFetchCommunities      = errors.New("failed to fetch communities")
	ErrFetchCommunityCohorts = errors.New("failed to fetch community cohorts")
	ErrFetchLessons          = errors.New("failed to fetch lessons")
	ErrCreateCohort          = errors.New("failed to create cohort")
	ErrUpdateCohort          = errors.New("failed to update cohort")
	ErrDeleteCohort          = errors.New("failed to delete cohort")
	ErrCreatePost            = errors.New("failed to create post")
	ErrCreateComment         = errors.New("failed to create comment")
)
