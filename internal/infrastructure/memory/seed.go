package memory

import (
	"github.com/oksasatya/cohortly/internal/domain/entity"
)

// Fixed ids of the seeded sandbox data.
const (
	SeedConvenerID  = "usr_convener"
	SeedLearnerID   = "usr_learner"
	SeedCommunityID = "cmt_gophers"
	SeedCohortID    = "coh_spring"
	SeedReferral    = "SPRING26"
	SeedProgrammeID = "prg_backend"
	SeedModuleID    = "mod_http"
	SeedPostID      = "pst_welcome"
)

// Seed fills r with one convener, one learner and a small community tree.
func Seed(r *SandboxRepository) {
	r.AddUser(entity.User{
		ID: SeedConvenerID, FirstName: "Grace", LastName: "Hopper", Username: "grace",
		Email: "grace@cohortly.dev", Role: "convener", Location: "Arlington",
	})
	r.AddUser(entity.User{
		ID: SeedLearnerID, FirstName: "Alan", LastName: "Turing", Username: "alan",
		Email: "alan@cohortly.dev", Role: "learner",
	})

	r.AddCommunity(entity.Community{
		ID: SeedCommunityID, Name: "Gophers", Description: "Backend engineering in Go",
		ConvenerID: SeedConvenerID, MemberCount: 2,
	})
	r.AddCommunity(entity.Community{
		ID: "cmt_data", Name: "Data Folks", Description: "Pipelines and storage",
		ConvenerID: SeedConvenerID,
	})

	_ = r.CreateCohort(SeedConvenerID, &entity.Cohort{
		ID: SeedCohortID, CommunityID: SeedCommunityID, Name: "Spring 2026",
		Description: "Twelve weeks of services in Go", StartDate: "2026-03-02", EndDate: "2026-05-25",
		MaxMembers: 25, Goal: "Ship a production service", Referral: SeedReferral,
		CommunityStructure: "weekly",
	})
	_ = r.CreateCohort(SeedConvenerID, &entity.Cohort{
		ID: "coh_autumn", CommunityID: SeedCommunityID, Name: "Autumn 2026",
		Description: "Concurrency and storage", StartDate: "2026-09-07", EndDate: "2026-11-30",
		MaxMembers: 2, Referral: "AUTUMN26",
	})
	_ = r.CreateCohort(SeedConvenerID, &entity.Cohort{
		ID: "coh_etl", CommunityID: "cmt_data", Name: "ETL Basics",
		Description: "Batch pipelines", StartDate: "2026-04-01", EndDate: "2026-06-01",
		MaxMembers: 10, Referral: "ETL26",
	})
	_ = r.AddMember(SeedCohortID, SeedLearnerID)

	r.AddProgramme(
		entity.Programme{ID: SeedProgrammeID, CommunityID: SeedCommunityID, Title: "Backend Track", Description: "From handlers to deployment"},
		[]entity.Module{
			{ID: SeedModuleID, ProgrammeID: SeedProgrammeID, Title: "HTTP services", Position: 1},
			{ID: "mod_concurrency", ProgrammeID: SeedProgrammeID, Title: "Concurrency", Position: 2},
		},
		[]entity.Lesson{
			{ID: "lsn_handlers", ModuleID: SeedModuleID, Title: "Handlers and routing", Content: "net/http and gin"},
			{ID: "lsn_middleware", ModuleID: SeedModuleID, Title: "Middleware", VideoURL: "https://videos.cohortly.dev/middleware"},
			{ID: "lsn_channels", ModuleID: "mod_concurrency", Title: "Channels"},
		},
	)

	r.mu.Lock()
	r.posts[SeedCohortID] = []entity.Post{
		{
			ID: SeedPostID, Text: "Welcome to the spring cohort!", CreatedAt: "2026-03-02T09:00:00Z",
			PostedBy: &entity.PostAuthor{FirstName: "Grace", LastName: "Hopper", Email: "grace@cohortly.dev"},
		},
		{ID: "pst_orphan", Text: "Reading list is pinned.", CreatedAt: "2026-03-03T10:00:00Z"},
	}
	r.postCohort[SeedPostID] = SeedCohortID
	r.postCohort["pst_orphan"] = SeedCohortID
	r.comments[SeedPostID] = []entity.Comment{
		{
			ID: "cmt_hello", Text: "Glad to be here", PostID: SeedPostID, UpdatedAt: "2026-03-02T10:15:00Z",
			Author: &entity.CommentAuthor{FirstName: "Alan", LastName: "Turing"},
		},
	}
	r.mu.Unlock()
}

// NewSeededSandboxRepository returns a repository filled by Seed.
func NewSeededSandboxRepository() *SandboxRepository {
	r := NewSandboxRepository()
	Seed(r)
	return r
}
