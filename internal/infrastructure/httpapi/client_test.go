package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/cohortly/internal/domain/entity"
	"github.com/oksasatya/cohortly/internal/domain/repository"
)

type recorded struct {
	method string
	path   string
	auth   []string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) last() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reqs[len(r.reqs)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

// newServer answers every request with body and records what it received.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, recorded{method: r.Method, path: r.URL.EscapedPath(), auth: r.Header.Values("Authorization")})
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }

func offlineClient(err error, strict bool) *Client {
	return New(Options{
		BaseURL:    "http://api.invalid",
		HTTPClient: &http.Client{Transport: failingTransport{err: err}},
		Tokens:     StaticToken("tok"),
		Strict:     strict,
	})
}

type readCall struct {
	name string
	path string
	call func(ctx context.Context, c *Client) error
}

func readCalls() []readCall {
	return []readCall{
		{"cohorts", "/v1/api/cohorts", func(ctx context.Context, c *Client) error { _, err := c.Cohorts(ctx); return err }},
		{"cohort", "/v1/api/cohorts/c1", func(ctx context.Context, c *Client) error { _, err := c.Cohort(ctx, "c1"); return err }},
		{"members", "/v1/api/cohorts/c1/members", func(ctx context.Context, c *Client) error { _, err := c.CohortMembers(ctx, "c1"); return err }},
		{"posts", "/v1/api/cohorts/c1/posts", func(ctx context.Context, c *Client) error { _, err := c.Posts(ctx, "c1"); return err }},
		{"comments", "/v1/api/posts/p1/comments", func(ctx context.Context, c *Client) error { _, err := c.Comments(ctx, "p1"); return err }},
		{"communities", "/v1/api/communities", func(ctx context.Context, c *Client) error { _, err := c.Communities(ctx); return err }},
		{"joined", "/v1/api/communities/joined", func(ctx context.Context, c *Client) error { _, err := c.JoinedCommunities(ctx); return err }},
		{"community cohorts", "/v1/api/communities/m1/cohorts", func(ctx context.Context, c *Client) error { _, err := c.CommunityCohorts(ctx, "m1"); return err }},
		{"programmes", "/v1/api/communities/m1/programmes", func(ctx context.Context, c *Client) error { _, err := c.Programmes(ctx, "m1"); return err }},
		{"modules", "/v1/api/programmes/g1/modules", func(ctx context.Context, c *Client) error { _, err := c.Modules(ctx, "g1"); return err }},
		{"lessons", "/v1/api/modules/d1/lessons", func(ctx context.Context, c *Client) error { _, err := c.Lessons(ctx, "d1"); return err }},
		{"profile", "/v1/api/users/profile", func(ctx context.Context, c *Client) error { _, err := c.Profile(ctx); return err }},
	}
}

const fullBody = `{"success":true,"data":{
	"cohorts":[],"cohort":{"id":"c1"},"members":[],"posts":[],"comments":[],
	"communities":[],"programmes":[],"modules":[],"lessons":[],"user":{"id":"u1"}}}`

func TestReads_SendBearerToken(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, fullBody)
	c := New(Options{BaseURL: srv.URL + "/", Tokens: StaticToken("secret-token")})

	for _, rc := range readCalls() {
		t.Run(rc.name, func(t *testing.T) {
			require.NoError(t, rc.call(context.Background(), c))
			got := rec.last()
			assert.Equal(t, http.MethodGet, got.method)
			assert.Equal(t, rc.path, got.path)
			assert.Equal(t, []string{"Bearer secret-token"}, got.auth)
		})
	}
}

func TestReads_WithoutTokenStillSendRequest(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, fullBody)
	c := New(Options{BaseURL: srv.URL, Tokens: NewStoreTokenSource(emptyStore{})})

	for _, rc := range readCalls() {
		t.Run(rc.name, func(t *testing.T) {
			before := rec.count()
			require.NoError(t, rc.call(context.Background(), c))
			assert.Equal(t, before+1, rec.count())
			assert.Empty(t, rec.last().auth)
		})
	}
}

func TestReads_TokenStoreErrorStillSendsRequest(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, fullBody)
	c := New(Options{BaseURL: srv.URL, Tokens: NewStoreTokenSource(brokenStore{})})

	_, err := c.Cohorts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rec.count())
	assert.Empty(t, rec.last().auth)
}

func TestCohorts_ExtractsNestedField(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"cohorts":[{"id":"c1","name":"Spring","max_members":20},{"id":"c2","name":"Autumn"}]}}`)
	c := New(Options{BaseURL: srv.URL})

	cohorts, err := c.Cohorts(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 2)
	assert.Equal(t, "Spring", cohorts[0].Name)
	assert.Equal(t, 20, cohorts[0].MaxMembers)
	assert.Equal(t, "c2", cohorts[1].ID)
}

func TestPosts_NullAuthor(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"posts":[
		{"id":"p1","text":"hi","posted_by":{"first_name":"Ada","last_name":"L","email":"a@x.io"}},
		{"id":"p2","text":"anon","posted_by":null}]}}`)
	c := New(Options{BaseURL: srv.URL})

	posts, err := c.Posts(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Ada L", posts[0].AuthorName())
	assert.Nil(t, posts[1].PostedBy)
	assert.Equal(t, "", posts[1].AuthorName())
}

func TestSwallowEndpoints_ReturnEmptyOnFailure(t *testing.T) {
	c := offlineClient(errors.New("connection refused"), false)
	ctx := context.Background()

	posts, err := c.Posts(ctx, "c1")
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)

	members, err := c.CohortMembers(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, members)

	comments, err := c.Comments(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, comments)

	programmes, err := c.Programmes(ctx, "m1")
	require.NoError(t, err)
	assert.Empty(t, programmes)
}

func TestSwallowEndpoints_ReturnEmptyOnServerError(t *testing.T) {
	srv, _ := newServer(t, http.StatusInternalServerError, `{"message":"boom"}`)
	c := New(Options{BaseURL: srv.URL})

	posts, err := c.Posts(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRethrowEndpoints_ReturnFixedError(t *testing.T) {
	c := offlineClient(errors.New("some very specific detail"), false)
	ctx := context.Background()

	err := c.DeleteCohort(ctx, "c1")
	require.Error(t, err)
	assert.Equal(t, "failed to delete cohort", err.Error())
	assert.ErrorIs(t, err, ErrDeleteCohort)
	assert.NotContains(t, err.Error(), "specific detail")
	assert.Equal(t, ErrorKind(0), KindOf(err))

	_, err = c.Cohorts(ctx)
	assert.Equal(t, "failed to fetch cohorts", err.Error())
	_, err = c.CreateCohort(ctx, entity.Cohort{Name: "x"})
	assert.Equal(t, "failed to create cohort", err.Error())
	_, err = c.Lessons(ctx, "d1")
	assert.Equal(t, "failed to fetch lessons", err.Error())
}

func TestRethrowEndpoints_ServerErrorDetailDiscarded(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message":"cohort not found"}`)
	c := New(Options{BaseURL: srv.URL})

	err := c.DeleteCohort(context.Background(), "missing")
	assert.Equal(t, ErrDeleteCohort, err)
}

func TestPropagateEndpoints_ReturnOriginalError(t *testing.T) {
	cause := errors.New("network is unreachable")
	c := offlineClient(cause, false)

	_, err := c.JoinedCommunities(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindNetwork, KindOf(err))

	_, err = c.Modules(context.Background(), "g1")
	assert.ErrorIs(t, err, cause)
}

func TestPropagateEndpoints_ClassifyStatus(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"message":"missing access token"}`)
	c := New(Options{BaseURL: srv.URL})

	_, err := c.JoinedCommunities(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindAuth, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "missing access token", apiErr.Message)
}

func TestStrictMode_PropagatesEverywhere(t *testing.T) {
	cause := errors.New("offline")
	c := offlineClient(cause, true)

	err := c.DeleteCohort(context.Background(), "c1")
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrDeleteCohort)

	_, err = c.Posts(context.Background(), "c1")
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestStrictMode_ParseErrorOnMissingField(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"data":{"items":[]}}`)
	c := New(Options{BaseURL: srv.URL, Strict: true})

	_, err := c.Cohorts(context.Background())
	assert.Equal(t, KindParse, KindOf(err))

	srv2, _ := newServer(t, http.StatusOK, `{"data":{"cohorts":{"not":"a list"}}}`)
	c2 := New(Options{BaseURL: srv2.URL, Strict: true})
	_, err = c2.Cohorts(context.Background())
	assert.Equal(t, KindParse, KindOf(err))
}

func TestDeleteCohort_UsesDelete(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"success":true}`)
	c := New(Options{BaseURL: srv.URL, Tokens: StaticToken("t")})

	require.NoError(t, c.DeleteCohort(context.Background(), "c 1"))
	assert.Equal(t, http.MethodDelete, rec.last().method)
	assert.Equal(t, "/v1/api/cohorts/c%201", rec.last().path)
}

func TestUpdateProfile_FieldErrorsAreData(t *testing.T) {
	var gotForm map[string][]string
	var gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotForm = r.MultipartForm.Value
		if fh, ok := r.MultipartForm.File["profileImage"]; ok {
			gotFile = fh[0].Filename
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"error":true,"message":{"username":"is taken"}}`)
	}))
	defer srv.Close()

	img := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(img, []byte("png"), 0o600))

	c := New(Options{BaseURL: srv.URL})
	res, err := c.UpdateProfile(context.Background(), entity.ProfileFormData{
		FirstName:    "Ada",
		Username:     "ada",
		ProfileImage: &entity.ProfileImage{URI: "file://" + img, Type: "image/png"},
	})
	require.NoError(t, err)
	assert.True(t, res.Error)
	assert.Equal(t, "is taken", res.Message.Username)
	assert.Equal(t, []string{"Ada"}, gotForm["firstName"])
	assert.NotContains(t, gotForm, "bio")
	assert.Equal(t, "me.png", gotFile)
}

func TestUpdateProfile_Success(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"error":false,"message":{},"user":{"id":"u1","first_name":"Ada"}}`)
	c := New(Options{BaseURL: srv.URL, Tokens: StaticToken("t")})

	res, err := c.UpdateProfile(context.Background(), entity.ProfileFormData{FirstName: "Ada"})
	require.NoError(t, err)
	assert.False(t, res.Error)
	require.NotNil(t, res.User)
	assert.Equal(t, "Ada", res.User.FirstName)
	assert.Equal(t, http.MethodPut, rec.last().method)
}

func TestUpdateProfile_AuthFailurePropagates(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"success":false,"message":"invalid access token"}`)
	c := New(Options{BaseURL: srv.URL})

	_, err := c.UpdateProfile(context.Background(), entity.ProfileFormData{Bio: "hi"})
	assert.Equal(t, KindAuth, KindOf(err))
}

func TestEndpoint_Expand(t *testing.T) {
	assert.Equal(t, "/v1/api/cohorts/a%2Fb/members", EndpointCohortMembers.Expand("a/b"))
	assert.Equal(t, "/v1/api/cohorts/", EndpointCohort.Expand())
	assert.Equal(t, "/v1/api/cohorts", EndpointCohorts.Expand("ignored"))
}

func TestEndpoints_RethrowHaveMessages(t *testing.T) {
	for _, ep := range Endpoints {
		if ep.Policy == PolicyRethrow {
			assert.NotNil(t, ep.Err, ep.Name)
		}
	}
}

type emptyStore struct{}

func (emptyStore) Get(context.Context, string) (string, error) { return "", repository.ErrNotFound }
func (emptyStore) Set(context.Context, string, string) error    { return nil }
func (emptyStore) Delete(context.Context, string) error         { return nil }

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (string, error) { return "", errors.New("disk on fire") }
func (brokenStore) Set(context.Context, string, string) error    { return nil }
func (brokenStore) Delete(context.Context, string) error         { return nil }
