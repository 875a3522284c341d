package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
)

// SandboxRepository holds the sandbox API data in memory. Every read returns
// copies.
type SandboxRepository struct {
	mu sync.RWMutex

	users       map[string]*entity.User
	userOrder   []string
	cohorts     map[string]*entity.Cohort
	cohortOrder []string
	owners      map[string]string
	members     map[string][]entity.Member
	communities []entity.Community
	programmes  []entity.Programme
	modules     []entity.Module
	lessons     []entity.Lesson
	posts       map[string][]entity.Post
	comments    map[string][]entity.Comment
	postCohort  map[string]string

	now func() time.Time
}

func NewSandboxRepository() *SandboxRepository {
	return &SandboxRepository{
		users:      make(map[string]*entity.User),
		cohorts:    make(map[string]*entity.Cohort),
		owners:     make(map[string]string),
		members:    make(map[string][]entity.Member),
		posts:      make(map[string][]entity.Post),
		comments:   make(map[string][]entity.Comment),
		postCohort: make(map[string]string),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.SandboxRepository = (*SandboxRepository)(nil)

func (r *SandboxRepository) stamp() string { return r.now().Format(time.RFC3339) }

func (r *SandboxRepository) GetUser(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *SandboxRepository) UpdateUser(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *SandboxRepository) Users() []entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.User, 0, len(r.userOrder))
	for _, id := range r.userOrder {
		out = append(out, *r.users[id])
	}
	return out
}

// AddUser is used by seeding and tests.
func (r *SandboxRepository) AddUser(u entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, ok := r.users[u.ID]; !ok {
		r.userOrder = append(r.userOrder, u.ID)
	}
	r.users[u.ID] = &u
}

func (r *SandboxRepository) isMember(cohortID, userID string) bool {
	for _, m := range r.members[cohortID] {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func (r *SandboxRepository) convenes(communityID, userID string) bool {
	for _, c := range r.communities {
		if c.ID == communityID {
			return c.ConvenerID == userID
		}
	}
	return false
}

// manages reports whether userID may change cohort c.
func (r *SandboxRepository) manages(c *entity.Cohort, userID string) bool {
	return r.owners[c.ID] == userID || r.convenes(c.CommunityID, userID)
}

// ListCohorts returns the cohorts userID belongs to or convenes.
func (r *SandboxRepository) ListCohorts(userID string) []entity.Cohort {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Cohort{}
	for _, id := range r.cohortOrder {
		c := r.cohorts[id]
		if r.isMember(id, userID) || r.convenes(c.CommunityID, userID) {
			out = append(out, *c)
		}
	}
	return out
}

func (r *SandboxRepository) GetCohort(id string) (*entity.Cohort, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cohorts[id]
	if !ok {
		return nil, repository.ErrCohortNotFound
	}
	cp := *c
	return &cp, nil
}

// CreateCohort assigns an id and, when missing, a referral code. A cohort
// placed in a community must be created by that community's convener.
func (r *SandboxRepository) CreateCohort(convenerID string, c *entity.Cohort) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.CommunityID != "" && !r.convenes(c.CommunityID, convenerID) {
		return repository.ErrNotConvener
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Referral == "" {
		c.Referral = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	cp := *c
	r.cohorts[c.ID] = &cp
	r.owners[c.ID] = convenerID
	r.cohortOrder = append(r.cohortOrder, c.ID)
	return nil
}

func (r *SandboxRepository) UpdateCohort(convenerID string, c *entity.Cohort) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.cohorts[c.ID]
	if !ok {
		return repository.ErrCohortNotFound
	}
	if !r.manages(cur, convenerID) {
		return repository.ErrNotConvener
	}
	if c.Referral == "" {
		c.Referral = cur.Referral
	}
	if c.CommunityID == "" {
		c.CommunityID = cur.CommunityID
	}
	if c.CommunityID != cur.CommunityID && !r.convenes(c.CommunityID, convenerID) {
		return repository.ErrNotConvener
	}
	cp := *c
	r.cohorts[c.ID] = &cp
	return nil
}

func (r *SandboxRepository) DeleteCohort(convenerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.cohorts[id]
	if !ok {
		return repository.ErrCohortNotFound
	}
	if !r.manages(cur, convenerID) {
		return repository.ErrNotConvener
	}
	delete(r.cohorts, id)
	delete(r.owners, id)
	delete(r.members, id)
	for _, p := range r.posts[id] {
		delete(r.comments, p.ID)
		delete(r.postCohort, p.ID)
	}
	delete(r.posts, id)
	for i, cid := range r.cohortOrder {
		if cid == id {
			r.cohortOrder = append(r.cohortOrder[:i], r.cohortOrder[i+1:]...)
			break
		}
	}
	return nil
}

// JoinCohort enrolls userID in the cohort whose referral code matches.
// Joining twice is a no-op.
func (r *SandboxRepository) JoinCohort(userID, referral string) (*entity.Cohort, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	for _, id := range r.cohortOrder {
		c := r.cohorts[id]
		if referral == "" || !strings.EqualFold(c.Referral, referral) {
			continue
		}
		if !r.isMember(id, userID) {
			if c.MaxMembers > 0 && len(r.members[id]) >= c.MaxMembers {
				return nil, repository.ErrCohortFull
			}
			r.members[id] = append(r.members[id], memberOf(u, r.stamp()))
		}
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrInvalidReferral
}

// AddMember is used by seeding and tests.
func (r *SandboxRepository) AddMember(cohortID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cohorts[cohortID]; !ok {
		return repository.ErrCohortNotFound
	}
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if !r.isMember(cohortID, userID) {
		r.members[cohortID] = append(r.members[cohortID], memberOf(u, r.stamp()))
	}
	return nil
}

func memberOf(u *entity.User, joinedAt string) entity.Member {
	return entity.Member{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		JoinedAt:  joinedAt,
	}
}

func (r *SandboxRepository) CohortMembers(cohortID string) ([]entity.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.cohorts[cohortID]; !ok {
		return nil, repository.ErrCohortNotFound
	}
	return append([]entity.Member{}, r.members[cohortID]...), nil
}

func (r *SandboxRepository) AddCommunity(c entity.Community) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.communities = append(r.communities, c)
}

// ListCommunities returns the communities convened by convenerID.
func (r *SandboxRepository) ListCommunities(convenerID string) []entity.Community {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Community{}
	for _, c := range r.communities {
		if c.ConvenerID == convenerID {
			out = append(out, c)
		}
	}
	return out
}

// JoinedCommunities returns the communities owning a cohort userID is a member of.
func (r *SandboxRepository) JoinedCommunities(userID string) []entity.Community {
	r.mu.RLock()
	defer r.mu.RUnlock()
	joined := make(map[string]bool)
	for _, id := range r.cohortOrder {
		if r.isMember(id, userID) {
			joined[r.cohorts[id].CommunityID] = true
		}
	}
	out := []entity.Community{}
	for _, c := range r.communities {
		if joined[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

func (r *SandboxRepository) CommunityCohorts(communityID string) []entity.Cohort {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Cohort{}
	for _, id := range r.cohortOrder {
		if c := r.cohorts[id]; c.CommunityID == communityID {
			out = append(out, *c)
		}
	}
	return out
}

func (r *SandboxRepository) AddProgramme(p entity.Programme, modules []entity.Module, lessons []entity.Lesson) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programmes = append(r.programmes, p)
	r.modules = append(r.modules, modules...)
	r.lessons = append(r.lessons, lessons...)
}

func (r *SandboxRepository) Programmes(communityID string) []entity.Programme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Programme{}
	for _, p := range r.programmes {
		if p.CommunityID == communityID {
			out = append(out, p)
		}
	}
	return out
}

func (r *SandboxRepository) Modules(programmeID string) []entity.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Module{}
	for _, m := range r.modules {
		if m.ProgrammeID == programmeID {
			out = append(out, m)
		}
	}
	return out
}

func (r *SandboxRepository) Lessons(moduleID string) []entity.Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []entity.Lesson{}
	for _, l := range r.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	return out
}

func (r *SandboxRepository) Posts(cohortID string) ([]entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.cohorts[cohortID]; !ok {
		return nil, repository.ErrCohortNotFound
	}
	return append([]entity.Post{}, r.posts[cohortID]...), nil
}

// CreatePost records a post by userID. An unknown user yields a post without
// an author.
func (r *SandboxRepository) CreatePost(cohortID, userID, text string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cohorts[cohortID]; !ok {
		return nil, repository.ErrCohortNotFound
	}
	p := entity.Post{ID: uuid.NewString(), Text: text, CreatedAt: r.stamp()}
	if u, ok := r.users[userID]; ok {
		p.PostedBy = &entity.PostAuthor{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
	}
	r.posts[cohortID] = append(r.posts[cohortID], p)
	r.postCohort[p.ID] = cohortID
	return &p, nil
}

func (r *SandboxRepository) Comments(postID string) ([]entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.postCohort[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}
	return append([]entity.Comment{}, r.comments[postID]...), nil
}

func (r *SandboxRepository) CreateComment(postID, userID string, in entity.CreateCommentRequest) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.postCohort[postID]; !ok {
		return nil, repository.ErrPostNotFound
	}
	c := entity.Comment{ID: uuid.NewString(), Text: in.Text, PostID: postID, Media: in.Media, UpdatedAt: r.stamp()}
	if u, ok := r.users[userID]; ok {
		c.Author = &entity.CommentAuthor{FirstName: u.FirstName, LastName: u.LastName}
	}
	r.comments[postID] = append(r.comments[postID], c)
	return &c, nil
}
