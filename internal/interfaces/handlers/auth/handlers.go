package auth

import (
	"context"
	"errors"

	authsvc "easybazar-backend/internal/application/auth"
	"easybazar-backend/internal/middleware"
	"easybazar-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
	Rdb     *redis.Client
	Config  middleware.SessionConfig
}

// SignUp POST /api/auth/sign-up — username availability first, then account
// creation. Conflicts come back as 409.
func (h *Handlers) SignUp(c *fiber.Ctx) error {
	var in authsvc.SignUpInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	user, err := h.Service.SignUp(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUsernameTaken), errors.Is(err, authsvc.ErrEmailRegistered):
			return response.Error(c, err.Error(), fiber.StatusConflict)
		default:
			return response.FromError(c, err)
		}
	}
	return response.OK(c, fiber.Map{"ok": true, "userId": user.ID})
}

// SignInRequest body.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn POST /api/auth/sign-in — verify credentials, regenerate the session
// id, set the cookie.
func (h *Handlers) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest)
	}

	user, profile, err := h.Service.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailPasswordRequired), errors.Is(err, authsvc.ErrInvalidCredentials):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	middleware.SetSessionUser(c, middleware.SessionUser{
		ID:       user.ID.String(),
		Email:    user.Email,
		Username: profile.Username,
	})

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{"ok": true, "user": fiber.Map{
		"id":       user.ID,
		"email":    user.Email,
		"username": profile.Username,
	}})
}

// SignOut POST /api/auth/sign-out — drop the session server-side and clear
// the cookie.
func (h *Handlers) SignOut(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" && h.Rdb != nil {
		_ = h.Rdb.Del(context.Background(), middleware.SessionRedisPrefix+sessionID).Err()
	}
	middleware.DestroySession(c)
	c.Locals("session_id", "")

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.OK(c, fiber.Map{"ok": true})
}

// Me GET /api/auth/user — current session user or 401.
func (h *Handlers) Me(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	m, _ := middleware.GetUser(c).(map[string]interface{})
	email, _ := m["email"].(string)
	username, _ := m["username"].(string)
	return response.OK(c, fiber.Map{"user": fiber.Map{
		"id":       id,
		"email":    email,
		"username": username,
	}})
}

// ChangePasswordRequest body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword POST /api/auth/change-password.
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if err := h.Service.ChangePassword(c.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, authsvc.ErrIncorrectPassword):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, authsvc.ErrNotAuthenticated):
			return response.Unauthorized(c, err.Error())
		default:
			return response.FromError(c, err)
		}
	}
	return response.OK(c, fiber.Map{"ok": true})
}

// DeleteAccount DELETE /api/auth/delete-account — removes the account with
// its profile and listings, then kills the session.
func (h *Handlers) DeleteAccount(c *fiber.Ctx) error {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	if err := h.Service.DeleteAccount(c.Context(), id); err != nil {
		return response.FromError(c, err)
	}
	return h.SignOut(c)
}
