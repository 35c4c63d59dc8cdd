package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/shulehq/shulectl/core"
	"github.com/shulehq/shulectl/core/session"
)

var nowFunc = time.Now // mockable

// Client talks to the Shule REST backend. It owns the only two suspension
// points of the auth core (sign-in and profile fetch) and the centralized
// 401 handling for authenticated calls.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
	logger  core.Logger
}

func NewClient(conf *core.Config, store session.Store, logger core.Logger) *Client {
	return &Client{
		baseURL: conf.APIBaseURL,
		http:    &http.Client{Timeout: conf.RequestTimeout},
		store:   store,
		logger:  logger,
	}
}

// Credentials is the sign-in input. Validation is format-only; existence is
// the backend's call.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	if err := core.Validate.Struct(c); err != nil {
		if fldErrs, ok := err.(validator.ValidationErrors); ok {
			flds := make([]core.FieldError, 0, len(fldErrs))
			for _, fldErr := range fldErrs {
				flds = append(flds, core.FieldError{Field: fldErr.Field(), Error: fldErr.Translate(core.Translator)})
			}
			return core.NewValidationError(err, flds...)
		}
		return err
	}
	return nil
}

type signInResponse struct {
	Token  string      `json:"token"`
	Role   string      `json:"role"`
	UserID json.Number `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
}

// SignIn authenticates against POST /auth/signin and, on success, persists
// the full session before returning it. On any failure nothing is written:
// the store never sees a partial session (eg. a token without a role).
func (c *Client) SignIn(ctx context.Context, creds Credentials) (session.Session, error) {
	if err := creds.Validate(); err != nil {
		return session.Session{}, err
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return session.Session{}, errors.Wrap(err, "marshalling credentials")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/signin", bytes.NewReader(body))
	if err != nil {
		return session.Session{}, errors.Wrap(err, "building sign-in request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return session.Session{}, errors.Wrap(ErrUnreachable, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return session.Session{}, ErrInvalidCredentials
	case resp.StatusCode == http.StatusForbidden:
		return session.Session{}, ErrAccessDenied
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return session.Session{}, apiError(resp)
	}

	var data signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return session.Session{}, errors.Wrap(err, "decoding sign-in response")
	}
	if data.Token == "" || data.Role == "" {
		return session.Session{}, errors.New("sign-in response missing token or role")
	}

	sess := session.Session{
		Token:  data.Token,
		Role:   session.NormalizeRole(data.Role),
		UserID: data.UserID.String(),
	}
	if err := c.store.Write(sess); err != nil {
		return session.Session{}, errors.Wrap(err, "persisting session")
	}
	return sess, nil
}

type profileResponse struct {
	UserID     json.Number `json:"userId"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Department string      `json:"department"`
	Role       string      `json:"role"`
}

// Profile resolves the signed-in user's display profile, cache-aside: a live
// fetch refreshes the cached snapshot, a failed fetch falls back to it. The
// returned bool reports whether the profile came from the cache.
//
// Profile never mutates token or role and never blocks rendering: without a
// token, or when both the fetch and the cache come up empty, it returns an
// empty profile and no error. The only error it surfaces is ErrSessionExpired
// from the 401 interceptor.
func (c *Client) Profile(ctx context.Context) (session.Profile, bool, error) {
	sess, err := c.store.Read()
	if err != nil {
		return session.Profile{}, false, errors.Wrap(err, "reading session")
	}
	if !sess.IsAuthenticated() {
		// the guard should have redirected already; render without profile
		return session.Profile{}, false, nil
	}

	profile, err := c.fetchProfile(ctx, sess)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return session.Profile{}, false, err
		}
		c.logger.Warn("profile fetch failed, falling back to cached snapshot", err)
		if sess.Profile != nil {
			return *sess.Profile, true, nil
		}
		return session.Profile{}, false, nil
	}

	if err := c.store.WriteProfile(profile); err != nil {
		// cache refresh failure degrades the next offline render only
		c.logger.Warn("refreshing cached profile failed", err)
	}
	return profile, false, nil
}

func (c *Client) fetchProfile(ctx context.Context, sess session.Session) (session.Profile, error) {
	resp, err := c.doAuthenticated(ctx, sess.Token, "/users/me")
	if err != nil {
		return session.Profile{}, err
	}
	if resp.StatusCode == http.StatusNotFound {
		// older backends only expose the by-email endpoint; address it with
		// the token's identity claim (a hint, not an authorization fact)
		resp.Body.Close()
		claims, err := session.DecodeClaims(sess.Token)
		if err != nil {
			return session.Profile{}, errors.Wrap(err, "resolving identity claim")
		}
		if resp, err = c.doAuthenticated(ctx, sess.Token, "/users/email/"+url.PathEscape(claims.Identity())); err != nil {
			return session.Profile{}, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return session.Profile{}, apiError(resp)
	}

	var data profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return session.Profile{}, errors.Wrap(err, "decoding profile response")
	}
	return session.Profile{
		UserID:     data.UserID.String(),
		FullName:   data.FullName,
		Email:      data.Email,
		Phone:      data.Phone,
		Department: data.Department,
		Role:       data.Role,
		FetchedAt:  nowFunc().UTC(),
	}, nil
}

// doAuthenticated issues a GET with the bearer token and applies the single
// 401 interceptor: any authenticated call coming back 401 clears the session
// so the next guard evaluation redirects to login.
func (c *Client) doAuthenticated(ctx context.Context, token, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnreachable, err.Error())
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := c.store.Clear(); err != nil {
			c.logger.Error("clearing session after 401 failed", err)
		}
		return nil, ErrSessionExpired
	}
	return resp, nil
}
