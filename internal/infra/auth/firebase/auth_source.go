package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ecell/config"
	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	identityToolkitBaseURL = "https://identitytoolkit.googleapis.com/v1"
	secureTokenBaseURL     = "https://securetoken.googleapis.com/v1"

	restCallTimeout = 15 * time.Second
)

// session holds the live credentials of the signed-in identity.
type session struct {
	uid          string
	email        string
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

// authSource implements service.AuthSource. Identity management goes through
// the Admin SDK; password verification goes through the Identity Toolkit REST
// endpoint, which is the only surface that checks credentials.
type authSource struct {
	admin      *firebaseauth.Client
	apiKey     string
	httpClient *http.Client
	signInURL  string
	refreshURL string
	state      *broadcaster
	logger     *slog.Logger

	mu   sync.Mutex
	sess *session
}

// AuthSourceParams holds dependencies for the Firebase auth source, injected by Fx.
type AuthSourceParams struct {
	fx.In

	Admin  *firebaseauth.Client
	Config *config.Config
	Logger *slog.Logger
}

// NewAuthSource is the constructor for authSource.
func NewAuthSource(params AuthSourceParams) (service.AuthSource, error) {
	if params.Config.Firebase == nil || params.Config.Firebase.APIKey == "" {
		return nil, errors.New("firebase api key missing")
	}

	return &authSource{
		admin:      params.Admin,
		apiKey:     params.Config.Firebase.APIKey,
		httpClient: &http.Client{Timeout: restCallTimeout},
		signInURL:  identityToolkitBaseURL + "/accounts:signInWithPassword",
		refreshURL: secureTokenBaseURL + "/token",
		state:      newBroadcaster(),
		logger:     params.Logger,
	}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type restErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn verifies the credential pair and establishes the session.
func (s *authSource) SignIn(ctx context.Context, email, password string) error {
	resp, err := s.postSignIn(ctx, email, password)
	if err != nil {
		return err
	}

	s.commitSession(resp)
	s.logger.Debug("Signed in", slog.String("uid", resp.LocalID))

	return nil
}

// SignUp registers the identity through the Admin SDK, then signs it in
// through the REST endpoint to establish the session. A failed session
// establishment is logged, not fatal: the identity exists and its UID is what
// the caller needs.
func (s *authSource) SignUp(ctx context.Context, email, password string) (*entity.User, error) {
	record, err := s.admin.CreateUser(ctx, (&firebaseauth.UserToCreate{}).
		Email(email).
		Password(password))
	if err != nil {
		if firebaseauth.IsEmailAlreadyExists(err) {
			return nil, domainerrors.ErrEmailAlreadyExists.WrapMessage("create identity")
		}
		s.logger.Warn("Identity creation failed", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrAuthFailed.WrapMessage("create identity")
	}

	identity := &entity.User{UID: record.UID, Email: email}

	resp, err := s.postSignIn(ctx, email, password)
	if err != nil {
		s.logger.Warn("Post-signup sign in failed, continuing without session", slog.String("uid", record.UID), slog.Any("error", err))
		s.state.set(identity)

		return identity, nil
	}

	s.commitSession(resp)

	return identity, nil
}

// SignOut revokes the refresh tokens of the signed-in identity and clears the
// session. Revocation failure keeps the session so the caller can retry.
func (s *authSource) SignOut(ctx context.Context) error {
	s.mu.Lock()
	sess := s.sess
	s.mu.Unlock()

	if sess == nil {
		return nil
	}

	if err := s.admin.RevokeRefreshTokens(ctx, sess.uid); err != nil {
		return errors.Wrap(classifyTransportError(err), "failed to revoke refresh tokens")
	}

	s.mu.Lock()
	s.sess = nil
	s.mu.Unlock()
	s.state.set(nil)
	s.logger.Debug("Signed out", slog.String("uid", sess.uid))

	return nil
}

// Current returns the identity of the active session, or nil when signed out.
func (s *authSource) Current() *entity.User {
	return s.state.get()
}

// Watch streams auth-state changes, starting with the current state.
func (s *authSource) Watch() (<-chan *entity.User, func()) {
	return s.state.watch()
}

// postSignIn calls the Identity Toolkit password sign-in endpoint.
func (s *authSource) postSignIn(ctx context.Context, email, password string) (*signInResponse, error) {
	body, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, domainerrors.ErrSerialization.WrapMessage("encode sign-in request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.signInURL+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build sign-in request")
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(classifyTransportError(err), "sign-in request failed")
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return nil, s.decodeRESTError(httpResp)
	}

	var resp signInResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, domainerrors.ErrSerialization.WrapMessage("decode sign-in response")
	}

	return &resp, nil
}

// decodeRESTError maps an Identity Toolkit error payload into the remote
// taxonomy, falling back to the HTTP status when the message is unknown.
func (s *authSource) decodeRESTError(httpResp *http.Response) error {
	var payload restErrorResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&payload); err != nil {
		return domainerrors.FromHTTPStatus(httpResp.StatusCode).WrapMessage("sign-in rejected")
	}

	switch payload.Error.Message {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return domainerrors.ErrInvalidCredentials.WrapMessage("sign-in rejected")
	case "EMAIL_EXISTS":
		return domainerrors.ErrEmailAlreadyExists.WrapMessage("sign-in rejected")
	case "USER_DISABLED":
		return domainerrors.ErrForbidden.WrapMessage("sign-in rejected")
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return domainerrors.ErrTooManyRequests.WrapMessage("sign-in rejected")
	default:
		s.logger.Warn("Unmapped identity toolkit error", slog.String("message", payload.Error.Message), slog.Int("status", httpResp.StatusCode))

		return domainerrors.FromHTTPStatus(httpResp.StatusCode).WrapMessage("sign-in rejected")
	}
}

// commitSession stores the session credentials and broadcasts the new state.
func (s *authSource) commitSession(resp *signInResponse) {
	expiresIn, err := strconv.Atoi(resp.ExpiresIn)
	if err != nil {
		expiresIn = 3600
	}

	s.mu.Lock()
	s.sess = &session{
		uid:          resp.LocalID,
		email:        resp.Email,
		idToken:      resp.IDToken,
		refreshToken: resp.RefreshToken,
		expiresAt:    time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	s.mu.Unlock()

	s.state.set(&entity.User{UID: resp.LocalID, Email: resp.Email})
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
