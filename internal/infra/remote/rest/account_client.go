package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ecell/config"
	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	pathCreateAccount = "/accounts/create"
	pathGetAccount    = "/accounts/get"
	pathTeamMembers   = "/team/members"

	retryBackoff = 300 * time.Millisecond
)

// accountClient implements service.RemoteAccountSource over the portal HTTP
// API. Reads retry on transient failures; the create write never retries, a
// repeat could double-write the document.
type accountClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     service.TokenProvider
	maxRetries int
	logger     *slog.Logger
}

// AccountClientParams holds dependencies for accountClient, injected by Fx.
type AccountClientParams struct {
	fx.In

	Config *config.Config
	Tokens service.TokenProvider
	Logger *slog.Logger
}

// NewAccountClient is the constructor for accountClient.
func NewAccountClient(params AccountClientParams) (service.RemoteAccountSource, error) {
	if params.Config.API == nil || params.Config.API.BaseURL == "" {
		return nil, errors.New("api base url missing")
	}

	return &accountClient{
		baseURL:    strings.TrimRight(params.Config.API.BaseURL, "/"),
		httpClient: &http.Client{Timeout: params.Config.API.Timeout},
		tokens:     params.Tokens,
		maxRetries: params.Config.API.MaxRetries,
		logger:     params.Logger,
	}, nil
}

// Create posts the account document to the portal API.
func (c *accountClient) Create(ctx context.Context, account *entity.Account) error {
	body, err := json.Marshal(toJSON(account))
	if err != nil {
		return domainerrors.ErrSerialization.WrapMessage("encode account payload")
	}

	resp, err := c.do(ctx, http.MethodPost, pathCreateAccount, nil, body)
	if err != nil {
		return errors.Wrap(err, "failed to create account via api")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict {
		return domainerrors.ErrDuplicateEntry.WrapMessage("create account via api")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domainerrors.FromHTTPStatus(resp.StatusCode).WrapMessage("create account via api")
	}

	return nil
}

// FindByKey retrieves the account whose id field equals the canonical key.
func (c *accountClient) FindByKey(ctx context.Context, key string) (*entity.Account, error) {
	return c.findByField(ctx, "id", key)
}

// FindByEmail retrieves the account registered with the given email.
func (c *accountClient) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return c.findByField(ctx, "email", email)
}

// FindByLibraryID retrieves the account holding the given library card.
func (c *accountClient) FindByLibraryID(ctx context.Context, libraryID string) (*entity.Account, error) {
	return c.findByField(ctx, "library_id", libraryID)
}

// TeamMembers lists every team-member account.
func (c *accountClient) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	resp, err := c.doWithRetry(ctx, http.MethodGet, pathTeamMembers, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list team members via api")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("list team members via api")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.FromHTTPStatus(resp.StatusCode).WrapMessage("list team members via api")
	}

	var dtos []accountJSON
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, domainerrors.ErrSerialization.WrapMessage("decode team member list")
	}
	if len(dtos) == 0 {
		return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("list team members via api")
	}

	members := make([]*entity.Account, 0, len(dtos))
	for i := range dtos {
		members = append(members, fromJSON(&dtos[i]))
	}

	return members, nil
}

func (c *accountClient) findByField(ctx context.Context, field, value string) (*entity.Account, error) {
	query := url.Values{}
	query.Set("field", field)
	query.Set("value", value)

	resp, err := c.doWithRetry(ctx, http.MethodGet, pathGetAccount, query, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query account by %s via api", field)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("account query by " + field)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.FromHTTPStatus(resp.StatusCode).WrapMessage("account query by " + field)
	}

	var dto accountJSON
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, domainerrors.ErrSerialization.WrapMessage("decode account payload")
	}

	return fromJSON(&dto), nil
}

// doWithRetry repeats idempotent requests on transport failure or 5xx, up to
// maxRetries extra attempts.
func (c *accountClient) doWithRetry(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; ; attempt++ {
		resp, err = c.do(ctx, method, path, query, body)
		if err == nil && resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		if attempt >= c.maxRetries {
			break
		}
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
		c.logger.Debug("Retrying api request", slog.String("path", path), slog.Int("attempt", attempt+1))

		select {
		case <-ctx.Done():
			return nil, classifyTransportError(ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// do issues one request with the bearer token attached.
func (c *accountClient) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) != 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build api request")
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "resolve bearer token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(classifyTransportError(err), "api request failed")
	}

	return resp, nil
}

// classifyTransportError folds low-level transport failures into the remote
// taxonomy.
func classifyTransportError(err error) error {
	var netErr net.Error

	switch {
	case errors.Is(err, context.Canceled):
		return domainerrors.ErrOperationCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return domainerrors.ErrRequestTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return domainerrors.ErrRequestTimeout
	case errors.As(err, &netErr):
		return domainerrors.ErrNoInternet
	default:
		return domainerrors.ErrRemoteUnknown
	}
}
