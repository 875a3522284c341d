package application

import (
	"time"

	"github.com/oksasatya/cohortly/internal/application/query"
)

// Query key roots. Per-resource keys append the parent id, e.g. posts/<cohortID>.
const (
	KeyCohorts           = "cohorts"
	KeyCohort            = "cohort"
	KeyCohortMembers     = "cohort-members"
	KeyPosts             = "posts"
	KeyComments          = "comments"
	KeyCommunities       = "communities"
	KeyJoinedCommunities = "joined-communities"
	KeyCommunityCohorts  = "community-cohorts"
	KeyProgrammes        = "programmes"
	KeyModules           = "modules"
	KeyLessons           = "lessons"
	KeyProfile           = "profile"
)

const (
	CohortsRefetchInterval           = 60 * time.Second
	CohortsStaleTime                 = 30 * time.Second
	CohortStaleTime                  = 60 * time.Second
	CohortMembersRefetchInterval     = 30 * time.Second
	CohortMembersStaleTime           = 15 * time.Second
	PostsRefetchInterval             = 15 * time.Second
	PostsStaleTime                   = 5 * time.Second
	CommentsRefetchInterval          = 20 * time.Second
	CommentsStaleTime                = 10 * time.Second
	CommunitiesRefetchInterval       = 120 * time.Second
	CommunitiesStaleTime             = 60 * time.Second
	JoinedCommunitiesRefetchInterval = 90 * time.Second
	JoinedCommunitiesStaleTime       = 45 * time.Second
	CommunityCohortsRefetchInterval  = 60 * time.Second
	CommunityCohortsStaleTime        = 30 * time.Second
	ProgrammesRefetchInterval        = 300 * time.Second
	ProgrammesStaleTime              = 120 * time.Second
	ModulesStaleTime                 = 300 * time.Second
	LessonsStaleTime                 = 300 * time.Second
	ProfileStaleTime                 = 600 * time.Second
)

var (
	CohortsOptions = query.Options{
		RefetchInterval: CohortsRefetchInterval, StaleTime: CohortsStaleTime, RefetchOnReconnect: true,
	}
	CohortOptions = query.Options{
		StaleTime: CohortStaleTime, RefetchOnReconnect: true,
	}
	CohortMembersOptions = query.Options{
		RefetchInterval: CohortMembersRefetchInterval, StaleTime: CohortMembersStaleTime, RefetchOnReconnect: true,
	}
	PostsOptions = query.Options{
		RefetchInterval: PostsRefetchInterval, StaleTime: PostsStaleTime, RefetchOnReconnect: true,
	}
	CommentsOptions = query.Options{
		RefetchInterval: CommentsRefetchInterval, StaleTime: CommentsStaleTime,
	}
	CommunitiesOptions = query.Options{
		RefetchInterval: CommunitiesRefetchInterval, StaleTime: CommunitiesStaleTime, RefetchOnReconnect: true,
	}
	JoinedCommunitiesOptions = query.Options{
		RefetchInterval: JoinedCommunitiesRefetchInterval, StaleTime: JoinedCommunitiesStaleTime, RefetchOnReconnect: true,
	}
	CommunityCohortsOptions = query.Options{
		RefetchInterval: CommunityCohortsRefetchInterval, StaleTime: CommunityCohortsStaleTime,
	}
	ProgrammesOptions = query.Options{
		RefetchInterval: ProgrammesRefetchInterval, StaleTime: ProgrammesStaleTime,
	}
	ModulesOptions = query.Options{StaleTime: ModulesStaleTime}
	LessonsOptions = query.Options{StaleTime: LessonsStaleTime}
	ProfileOptions = query.Options{StaleTime: ProfileStaleTime, RefetchOnReconnect: true}
)
