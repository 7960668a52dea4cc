package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/middleware"
	"github.com/painelweb/painel/internal/model"
	"github.com/painelweb/painel/internal/queue"
	"github.com/painelweb/painel/internal/repository"
	"github.com/painelweb/painel/internal/service"
)

// UserStore is the slice of the credential store the user endpoints need.
type UserStore interface {
	Create(ctx context.Context, username, email, password string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, username string, changes repository.UserChanges) (*model.User, error)
}

// UserHandler bundles dependencies for the user endpoints.
type UserHandler struct {
	Users UserStore

	// PublishEvents toggles the registration event; tests switch it off so
	// they do not dial the broker.
	PublishEvents bool
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{Users: users, PublishEvents: true}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user and returns the stored row with a 201.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidation("Invalid request body", "Check the request body and try again")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	if h.PublishEvents {
		// Fire and forget: the broker being down must not fail registration.
		_ = service.PublishUserRegistered(ctx, queue.UserRegisteredEvent{
			UserID:       u.ID,
			Username:     u.Username,
			Email:        u.Email,
			RegisteredAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, u)
}

// GetByUsername fetches one user by case-insensitive username.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByUsername(ctx, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Update applies a partial update to the user addressed by username.
func (h *UserHandler) Update(c echo.Context) error {
	var changes repository.UserChanges
	if err := c.Bind(&changes); err != nil {
		return apperr.NewValidation("Invalid request body", "Check the request body and try again")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, c.Param("username"), changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Current returns the user owning the session placed in the context by the
// session middleware.  The middleware already renewed the session and
// re-set the cookie before this handler runs.
func (h *UserHandler) Current(c echo.Context) error {
	sess, ok := c.Get(middleware.SessionContextKey).(*model.Session)
	if !ok {
		return apperr.NewUnauthorized(
			"Unauthorized session token",
			"Check the session token or login again")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByID(ctx, sess.UserID)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-store, no-cache, max-age=0, must-revalidate")
	return c.JSON(http.StatusOK, u)
}
