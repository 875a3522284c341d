package httpapi

import (
	"net/http"
	"net/url"
	"strings"
)

// Endpoint is the fixed contract of one remote operation: where it lives,
// which nested field of the body carries its payload and how it fails.
type Endpoint struct {
	Name   string
	Method string
	// Path is a versioned template; {name} segments are filled in order.
	Path string
	// Field is the key under "data" holding the payload. Empty means the
	// payload is not read.
	Field  string
	Policy Policy
	// Err is returned by PolicyRethrow endpoints.
	Err error
}

var (
	EndpointCohorts = Endpoint{
		Name: "cohorts", Method: http.MethodGet, Path: "/v1/api/cohorts",
		Field: "cohorts", Policy: PolicyRethrow, Err: ErrFetchCohorts,
	}
	EndpointCohort = Endpoint{
		Name: "cohort", Method: http.MethodGet, Path: "/v1/api/cohorts/{cohortID}",
		Field: "cohort", Policy: PolicyRethrow, Err: ErrFetchCohort,
	}
	EndpointCohortMembers = Endpoint{
		Name: "cohort_members", Method: http.MethodGet, Path: "/v1/api/cohorts/{cohortID}/members",
		Field: "members", Policy: PolicySwallow,
	}
	EndpointPosts = Endpoint{
		Name: "posts", Method: http.MethodGet, Path: "/v1/api/cohorts/{cohortID}/posts",
		Field: "posts", Policy: PolicySwallow,
	}
	EndpointComments = Endpoint{
		Name: "comments", Method: http.MethodGet, Path: "/v1/api/posts/{postID}/comments",
		Field: "comments", Policy: PolicySwallow,
	}
	EndpointCommunities = Endpoint{
		Name: "communities", Method: http.MethodGet, Path: "/v1/api/communities",
		Field: "communities", Policy: PolicyRethrow, Err: ErrFetchCommunities,
	}
	EndpointJoinedCommunities = Endpoint{
		Name: "joined_communities", Method: http.MethodGet, Path: "/v1/api/communities/joined",
		Field: "communities", Policy: PolicyPropagate,
	}
	EndpointCommunityCohorts = Endpoint{
		Name: "community_cohorts", Method: http.MethodGet, Path: "/v1/api/communities/{communityID}/cohorts",
		Field: "cohorts", Policy: PolicyRethrow, Err: ErrFetchCommunityCohorts,
	}
	EndpointProgrammes = Endpoint{
		Name: "programmes", Method: http.MethodGet, Path: "/v1/api/communities/{communityID}/programmes",
		Field: "programmes", Policy: PolicySwallow,
	}
	EndpointModules = Endpoint{
		Name: "modules", Method: http.MethodGet, Path: "/v1/api/programmes/{programmeID}/modules",
		Field: "modules", Policy: PolicyPropagate,
	}
	EndpointLessons = Endpoint{
		Name: "lessons", Method: http.MethodGet, Path: "/v1/api/modules/{moduleID}/lessons",
		Field: "lessons", Policy: PolicyRethrow, Err: ErrFetchLessons,
	}
	EndpointProfile = Endpoint{
		Name: "profile", Method: http.MethodGet, Path: "/v1/api/users/profile",
		Field: "user", Policy: PolicyPropagate,
	}

	EndpointCreateCohort = Endpoint{
		Name: "create_cohort", Method: http.MethodPost, Path: "/v1/api/cohorts",
		Field: "cohort", Policy: PolicyRethrow, Err: ErrCreateCohort,
	}
	EndpointUpdateCohort = Endpoint{
		Name: "update_cohort", Method: http.MethodPut, Path: "/v1/api/cohorts/{cohortID}",
		Field: "cohort", Policy: PolicyRethrow, Err: ErrUpdateCohort,
	}
	EndpointDeleteCohort = Endpoint{
		Name: "delete_cohort", Method: http.MethodDelete, Path: "/v1/api/cohorts/{cohortID}",
		Policy: PolicyRethrow, Err: ErrDeleteCohort,
	}
	EndpointJoinCohort = Endpoint{
		Name: "join_cohort", Method: http.MethodPost, Path: "/v1/api/cohorts/join",
		Field: "cohort", Policy: PolicyPropagate,
	}
	EndpointCreatePost = Endpoint{
		Name: "create_post", Method: http.MethodPost, Path: "/v1/api/cohorts/{cohortID}/posts",
		Field: "post", Policy: PolicyRethrow, Err: ErrCreatePost,
	}
	EndpointCreateComment = Endpoint{
		Name: "create_comment", Method: http.MethodPost, Path: "/v1/api/posts/{postID}/comments",
		Field: "comment", Policy: PolicyRethrow, Err: ErrCreateComment,
	}
	EndpointUpdateProfile = Endpoint{
		Name: "update_profile", Method: http.MethodPut, Path: "/v1/api/users/profile",
		Policy: PolicyPropagate,
	}
)

// Endpoints lists every operation of the API, reads first.
var Endpoints = []Endpoint{
	EndpointCohorts, EndpointCohort, EndpointCohortMembers, EndpointPosts, EndpointComments,
	EndpointCommunities, EndpointJoinedCommunities, EndpointCommunityCohorts,
	EndpointProgrammes, EndpointModules, EndpointLessons, EndpointProfile,
	EndpointCreateCohort, EndpointUpdateCohort, EndpointDeleteCohort, EndpointJoinCohort,
	EndpointCreatePost, EndpointCreateComment, EndpointUpdateProfile,
}

// Expand fills the {name} segments of the path with params, in order.
// Params are path-escaped but otherwise used as given.
func (e Endpoint) Expand(params ...string) string {
	var b strings.Builder
	path := e.Path
	i := 0
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			b.WriteString(path)
			break
		}
		end := strings.IndexByte(path[open:], '}')
		if end < 0 {
			b.WriteString(path)
			break
		}
		b.WriteString(path[:open])
		if i < len(params) {
			b.WriteString(url.PathEscape(params[i]))
		}
		i++
		path = path[open+end+1:]
	}
	return b.String()
}
