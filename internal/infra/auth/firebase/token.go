package firebase

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// expiryLeeway is how close to expiry a token may get before it is refreshed
// instead of handed out.
const expiryLeeway = time.Minute

// tokenProvider hands out the session's ID token for bearer auth against the
// portal API, refreshing it through the secure-token endpoint when it is
// about to expire.
type tokenProvider struct {
	source *authSource
	logger *slog.Logger
}

// TokenProviderParams holds dependencies for the token provider, injected by Fx.
type TokenProviderParams struct {
	fx.In

	Auth   service.AuthSource
	Logger *slog.Logger
}

// NewTokenProvider is the constructor for tokenProvider. It only works over
// the Firebase auth source, which owns the session credentials.
func NewTokenProvider(params TokenProviderParams) (service.TokenProvider, error) {
	source, ok := params.Auth.(*authSource)
	if !ok {
		return nil, errors.New("token provider requires the firebase auth source")
	}

	return &tokenProvider{source: source, logger: params.Logger}, nil
}

// Token returns a currently-valid ID token, or an empty string when signed out.
func (p *tokenProvider) Token(ctx context.Context) (string, error) {
	p.source.mu.Lock()
	sess := p.source.sess
	p.source.mu.Unlock()

	if sess == nil {
		return "", nil
	}

	if expiry := tokenExpiry(sess); time.Until(expiry) > expiryLeeway {
		return sess.idToken, nil
	}

	return p.refresh(ctx, sess.refreshToken)
}

// tokenExpiry reads the exp claim off the ID token without verifying the
// signature; verification is the backend's job. Falls back to the expiry
// reported at sign-in when the token does not parse.
func tokenExpiry(sess *session) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.idToken, claims); err != nil {
		return sess.expiresAt
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return sess.expiresAt
	}

	return exp.Time
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

// refresh exchanges the refresh token for a fresh ID token and commits it to
// the session.
func (p *tokenProvider) refresh(ctx context.Context, refreshToken string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.source.refreshURL+"?key="+p.source.apiKey, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build token refresh request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := p.source.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(classifyTransportError(err), "token refresh failed")
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		if httpResp.StatusCode == http.StatusBadRequest {
			// The refresh token was revoked or expired; the session is dead.
			return "", domainerrors.ErrUnauthorized.WrapMessage("token refresh rejected")
		}

		return "", domainerrors.FromHTTPStatus(httpResp.StatusCode).WrapMessage("token refresh rejected")
	}

	var resp refreshResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return "", domainerrors.ErrSerialization.WrapMessage("decode token refresh response")
	}

	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	p.source.mu.Lock()
	if p.source.sess != nil {
		p.source.sess.idToken = resp.IDToken
		p.source.sess.refreshToken = resp.RefreshToken
		p.source.sess.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	p.source.mu.Unlock()

	p.logger.Debug("Refreshed session token", slog.String("uid", resp.UserID))

	return resp.IDToken, nil
}
