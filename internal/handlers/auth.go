package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/blinkwall/blinkwall-api/internal/config"
	"github.com/blinkwall/blinkwall-api/internal/middleware"
	"github.com/blinkwall/blinkwall-api/internal/oauth"
	"github.com/blinkwall/blinkwall-api/internal/services"
	"github.com/blinkwall/blinkwall-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg            *config.Config
	provider       oauth.Provider
	userService    UserServiceInterface
	sessionService SessionServiceInterface
	states         sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(
	cfg *config.Config,
	provider oauth.Provider,
	userService UserServiceInterface,
	sessionService SessionServiceInterface,
) *AuthHandler {
	h := &AuthHandler{
		cfg:            cfg,
		provider:       provider,
		userService:    userService,
		sessionService: sessionService,
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value interface{}) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

// Login starts the Google OAuth flow.
func (h *AuthHandler) Login(c *drift.Context) {
	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	http.Redirect(c.Response, c.Request, h.provider.ConsentURL(state), http.StatusFound)
}

// Callback finishes the OAuth flow: it validates the state, exchanges the
// code, runs the domain-gated find-or-create and establishes a session. Any
// failure, including a rejected email domain, lands on the frontend's
// login-failure page with no session issued.
func (h *AuthHandler) Callback(c *drift.Context) {
	state := c.QueryParam("state")
	if state == "" {
		h.redirectWithError(c, "missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		h.redirectWithError(c, "invalid or expired state")
		return
	}

	sdTyped, ok := sd.(stateData)
	if !ok || time.Now().After(sdTyped.expiresAt) {
		h.redirectWithError(c, "state expired")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		h.redirectWithError(c, "missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	userInfo, err := h.provider.ExchangeCode(ctx, code)
	if err != nil {
		h.redirectWithError(c, "failed to exchange code")
		return
	}

	user, err := h.userService.FindOrCreateFromGoogle(ctx, userInfo)
	if errors.Is(err, services.ErrEmailDomainNotAllowed) {
		h.redirectWithError(c, fmt.Sprintf("access denied, only %s accounts are allowed", h.cfg.AllowedEmailDomain))
		return
	}
	if err != nil {
		h.redirectWithError(c, "failed to sign in")
		return
	}

	token, err := h.sessionService.Create(ctx, user.ID)
	if err != nil {
		h.redirectWithError(c, "failed to create session")
		return
	}

	h.setSessionCookie(c, token, int(h.sessionService.Expiry().Seconds()))
	http.Redirect(c.Response, c.Request, h.cfg.FrontendURL, http.StatusFound)
}

// Me returns the user resolved by the session guard.
func (h *AuthHandler) Me(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.Unauthorized("unauthorized, please log in")
		return
	}

	_ = c.JSON(200, dto.UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Nickname:         user.Nickname,
		Year:             user.Year,
		Department:       user.Department,
		ProfileCompleted: user.ProfileCompleted,
	})
}

// Logout destroys the caller's session, if any, and clears the cookie. It
// is mounted without the auth gate so a stale cookie can always be cleared.
func (h *AuthHandler) Logout(c *drift.Context) {
	cookie, err := c.Request.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.sessionService.Revoke(c.Request.Context(), cookie.Value); err != nil {
			c.InternalServerError("failed to destroy session")
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	_ = c.JSON(200, map[string]string{"message": "logged out successfully"})
}

// LogoutAll revokes every session belonging to the caller.
func (h *AuthHandler) LogoutAll(c *drift.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		c.Unauthorized("unauthorized, please log in")
		return
	}

	if err := h.sessionService.RevokeAllUserSessions(c.Request.Context(), user.ID); err != nil {
		c.InternalServerError("failed to destroy sessions")
		return
	}

	h.setSessionCookie(c, "", -1)
	_ = c.JSON(200, map[string]string{"message": "all sessions logged out"})
}

func (h *AuthHandler) setSessionCookie(c *drift.Context, token string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cfg.IsProduction() {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(c.Response, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: sameSite,
	})
}

func (h *AuthHandler) redirectWithError(c *drift.Context, errMsg string) {
	redirectURL := fmt.Sprintf("%s/login-failure?error=%s",
		h.cfg.FrontendURL,
		url.QueryEscape(errMsg),
	)
	http.Redirect(c.Response, c.Request, redirectURL, http.StatusFound)
}
