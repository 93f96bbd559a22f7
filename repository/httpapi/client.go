package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/diasKarataev/todo-client/domain"
	"github.com/diasKarataev/todo-client/repository"
)

const totalCountHeader = "X-Total-Count"

// Config carries the transport settings for the API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements repository.TaskRepository and repository.AccountRepository
// against the remote HTTP API. Every gated call checks the session before
// touching the network: a missing credential fails locally, never as a wasted
// round-trip.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
	session *domain.Session
	logger  *zap.Logger
}

var (
	_ repository.TaskRepository    = (*Client)(nil)
	_ repository.AccountRepository = (*Client)(nil)
)

func New(cfg Config, session *domain.Session, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		timeout: timeout,
		http:    &fasthttp.Client{},
		session: session,
		logger:  logger,
	}
}

func (c *Client) List(ctx context.Context, q repository.TaskQuery) ([]domain.Task, int, error) {
	if err := c.requireAuth(); err != nil {
		return nil, 0, err
	}

	rep, err := c.do(ctx, http.MethodGet, "/api/tasks", BuildQuery(q), nil, true)
	if err != nil {
		return nil, 0, err
	}
	if rep.status != http.StatusOK {
		return nil, 0, classify(rep.status, rep.body)
	}

	var tasks []domain.Task
	if err := decode(rep.body, &tasks); err != nil {
		return nil, 0, err
	}
	total := rep.total
	if total < 0 {
		total = len(tasks)
	}
	return tasks, total, nil
}

func (c *Client) Get(ctx context.Context, id string) (*domain.Task, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	rep, err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, nil, true)
	if err != nil {
		return nil, err
	}
	if rep.status != http.StatusOK {
		return nil, classify(rep.status, rep.body)
	}

	var task domain.Task
	if err := decode(rep.body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Create(ctx context.Context, name, details string) (*domain.Task, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	rep, err := c.do(ctx, http.MethodPost, "/api/tasks", nil, taskPayload{Name: name, Details: details}, true)
	if err != nil {
		return nil, err
	}
	if rep.status != http.StatusCreated {
		return nil, classify(rep.status, rep.body)
	}

	var task domain.Task
	if err := decode(rep.body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if err := validateID(task.ID); err != nil {
		return nil, err
	}

	rep, err := c.do(ctx, http.MethodPut, "/api/tasks/"+task.ID, nil, task, true)
	if err != nil {
		return nil, err
	}
	if rep.status != http.StatusOK {
		return nil, classify(rep.status, rep.body)
	}

	var updated domain.Task
	if err := decode(rep.body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	rep, err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, true)
	if err != nil {
		return err
	}
	if rep.status != http.StatusOK && rep.status != http.StatusNoContent {
		return classify(rep.status, rep.body)
	}
	return nil
}

func (c *Client) ToggleStar(ctx context.Context, id string) (repository.StarResult, error) {
	if err := c.requireAuth(); err != nil {
		return repository.StarResult{}, err
	}
	if err := validateID(id); err != nil {
		return repository.StarResult{}, err
	}

	rep, err := c.do(ctx, http.MethodPut, "/api/tasks/"+id+"/toggle-star", nil, nil, true)
	if err != nil {
		return repository.StarResult{}, err
	}
	if rep.status != http.StatusOK {
		return repository.StarResult{}, classify(rep.status, rep.body)
	}

	var res starResponse
	if err := decode(rep.body, &res); err != nil {
		return repository.StarResult{}, err
	}
	return repository.StarResult{Starred: res.HaveStar, LastUpdated: res.LastUpdated}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	rep, err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return "", err
	}
	// 401 here means the credentials themselves were wrong, which the user
	// can act on; everything else goes through the shared classification.
	if rep.status == http.StatusUnauthorized {
		return "", domain.ErrInvalidCredentials
	}
	if rep.status != http.StatusOK {
		return "", classify(rep.status, rep.body)
	}

	var res tokenResponse
	if err := decode(rep.body, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	rep, err := c.do(ctx, http.MethodPost, "/register", nil, req, false)
	if err != nil {
		return err
	}
	if rep.status != http.StatusCreated {
		return classify(rep.status, rep.body)
	}
	return nil
}

func (c *Client) UserInfo(ctx context.Context) (*domain.User, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	rep, err := c.do(ctx, http.MethodGet, "/api/user-info", nil, nil, true)
	if err != nil {
		return nil, err
	}
	if rep.status != http.StatusOK {
		return nil, classify(rep.status, rep.body)
	}

	var user domain.User
	if err := decode(rep.body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ResendActivation(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	rep, err := c.do(ctx, http.MethodGet, "/resend-activation-link", nil, nil, true)
	if err != nil {
		return err
	}
	if rep.status != http.StatusOK {
		return classify(rep.status, rep.body)
	}
	return nil
}

type reply struct {
	status int
	body   []byte
	total  int // -1 when the server did not report a total
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}, auth bool) (reply, error) {
	if err := ctx.Err(); err != nil {
		return reply{}, domain.WrapError(domain.ErrCodeNetwork, "request cancelled", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	if auth {
		req.Header.Set("Authorization", c.session.AuthHeader())
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return reply{}, domain.WrapError(domain.ErrCodeValidation, "failed to encode request", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	if err := c.http.DoTimeout(req, resp, timeout); err != nil {
		c.logger.Warn("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return reply{}, domain.WrapError(domain.ErrCodeNetwork, "request failed", err)
	}

	rep := reply{
		status: resp.StatusCode(),
		body:   append([]byte(nil), resp.Body()...),
		total:  -1,
	}
	if header := string(resp.Header.Peek(totalCountHeader)); header != "" {
		if total, err := strconv.Atoi(header); err == nil {
			rep.total = total
		}
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", rep.status))
	return rep, nil
}

func (c *Client) requireAuth() error {
	if !c.session.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	return nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.WrapError(domain.ErrCodeValidation, "invalid task id", err)
	}
	return nil
}

func decode(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		return domain.WrapError(domain.ErrCodeServer, "malformed server response", err)
	}
	return nil
}

// classify maps an HTTP failure status onto the domain taxonomy, folding the
// server's {"error": ...} message into it when one is present.
func classify(status int, body []byte) error {
	msg := serverMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		return domain.NewError(domain.ErrCodeUnauthenticated, orDefault(msg, "authorization rejected"))
	case status == http.StatusNotFound:
		return domain.NewError(domain.ErrCodeNotFound, orDefault(msg, "not found"))
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return domain.NewError(domain.ErrCodeValidation, orDefault(msg, "invalid request"))
	case status >= http.StatusInternalServerError:
		return domain.NewError(domain.ErrCodeServer, orDefault(msg, fmt.Sprintf("server failure (%d)", status)))
	case status >= http.StatusBadRequest:
		return domain.NewError(domain.ErrCodeRejected, orDefault(msg, fmt.Sprintf("request rejected (%d)", status)))
	}
	return domain.NewError(domain.ErrCodeServer, fmt.Sprintf("unexpected status %d", status))
}

func serverMessage(body []byte) string {
	var res errorResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return ""
	}
	return res.Error
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
