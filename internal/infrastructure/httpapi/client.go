package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cohortly/internal/domain/repository"
	"github.com/oksasatya/cohortly/pkg/helpers"
)

// TokenSource resolves the bearer token for one call. An empty token means
// the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed credential.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// StoreTokenSource reads the token from a TokenStore on every call.
type StoreTokenSource struct {
	Store repository.TokenStore
	Key   string
}

func NewStoreTokenSource(store repository.TokenStore) *StoreTokenSource {
	return &StoreTokenSource{Store: store, Key: repository.AuthTokenKey}
}

func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	tok, err := s.Store.Get(ctx, s.Key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

type Options struct {
	BaseURL string
	// Timeout of zero keeps the http.Client default (no timeout).
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *logrus.Logger
	// Strict makes every endpoint propagate its *APIError.
	Strict bool
}

// Client issues exactly one request per call against the configured base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *logrus.Logger
	strict  bool
}

func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		tokens:  opts.Tokens,
		logger:  logger,
		strict:  opts.Strict,
	}
}

// token never fails: a missing or unreadable token yields "".
func (c *Client) token(ctx context.Context) string {
	if c.tokens == nil {
		return ""
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("token lookup failed, sending request without credentials")
		return ""
	}
	return tok
}

type request struct {
	ep          Endpoint
	params      []string
	body        io.Reader
	contentType string
}

type reply struct {
	method string
	url    string
	status int
	body   []byte
}

// roundTrip resolves the token, then sends the request. Only transport
// failures are errors here.
func (c *Client) roundTrip(ctx context.Context, r request) (*reply, error) {
	tok := c.token(ctx)

	target := c.baseURL + r.ep.Expand(r.params...)
	req, err := http.NewRequestWithContext(ctx, r.ep.Method, target, r.body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Op: r.ep.Name, Method: r.ep.Method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Op: r.ep.Name, Method: r.ep.Method, URL: target, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Op: r.ep.Name, Method: r.ep.Method, URL: target, Status: res.StatusCode, Err: err}
	}
	c.logger.WithFields(logrus.Fields{
		"endpoint": r.ep.Name,
		"method":   r.ep.Method,
		"url":      target,
		"status":   res.StatusCode,
	}).Debug("api call")
	return &reply{method: r.ep.Method, url: target, status: res.StatusCode, body: body}, nil
}

// envelope is the outer shape shared by every endpoint; each endpoint then
// reads its own key out of Data.
type envelope struct {
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func (rp *reply) fail(op string, kind ErrorKind, err error) *APIError {
	e := &APIError{Kind: kind, Op: op, Method: rp.method, URL: rp.url, Status: rp.status, Err: err}
	if kind != KindParse {
		var env envelope
		if json.Unmarshal(rp.body, &env) == nil {
			e.Message = env.Message
		}
	}
	return e
}

func (rp *reply) ok() bool { return rp.status >= 200 && rp.status < 300 }

// fetch performs the call and extracts data.<Field> into T.
func fetch[T any](ctx context.Context, c *Client, r request) (T, error) {
	var out T
	rp, err := c.roundTrip(ctx, r)
	if err != nil {
		return out, err
	}
	if !rp.ok() {
		return out, rp.fail(r.ep.Name, kindForStatus(rp.status), nil)
	}
	if r.ep.Field == "" {
		return out, nil
	}

	var env envelope
	if err := json.Unmarshal(rp.body, &env); err != nil {
		return out, rp.fail(r.ep.Name, KindParse, err)
	}
	raw, ok := env.Data[r.ep.Field]
	if !ok {
		return out, rp.fail(r.ep.Name, KindParse, errors.New("response has no data."+r.ep.Field))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, rp.fail(r.ep.Name, KindParse, err)
	}
	return out, nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// get runs a read endpoint and settles failures with its policy.
func get[T any](ctx context.Context, c *Client, ep Endpoint, empty T, params ...string) (T, error) {
	v, err := fetch[T](ctx, c, request{ep: ep, params: params})
	if err != nil {
		return settle(c, ep, err, empty)
	}
	return v, nil
}

// send runs a write endpoint with a JSON body and settles failures with its policy.
func send[T any](ctx context.Context, c *Client, ep Endpoint, payload any, params ...string) (T, error) {
	r := request{ep: ep, params: params}
	if payload != nil {
		body, err := jsonBody(payload)
		if err != nil {
			var zero T
			return settle(c, ep, &APIError{Kind: KindParse, Op: ep.Name, Method: ep.Method, Err: err}, zero)
		}
		r.body = body
		r.contentType = "application/json"
	}
	v, err := fetch[T](ctx, c, r)
	if err != nil {
		var zero T
		return settle(c, ep, err, zero)
	}
	return v, nil
}

// nonNil turns a decoded JSON null into an empty collection.
func nonNil[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}
