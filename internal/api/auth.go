package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todo-service/internal/apperror"
	"todo-service/internal/auth"
	"todo-service/internal/entity"
	"todo-service/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup registers a user and returns a token --> /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return apperror.Validation("Invalid request payload")
	}
	if err := c.Validate(&user); err != nil {
		return err
	}

	result, err := h.authService.Signup(c.Request().Context(), &user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Signin exchanges credentials for a token --> /api/auth/signin
func (h *AuthHandler) Signin(c echo.Context) error {
	login := struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{}

	if err := c.Bind(&login); err != nil {
		return apperror.Validation("Invalid request payload")
	}
	if err := c.Validate(&login); err != nil {
		return err
	}

	result, err := h.authService.Signin(c.Request().Context(), login.Email, login.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Signout revokes the caller's token --> /api/auth/signout
func (h *AuthHandler) Signout(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return apperror.Auth(errors.New("no claims in context"))
	}

	if err := h.authService.Signout(c.Request().Context(), claims); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}

// Whoami echoes the authenticated user id --> /api/test
func (h *AuthHandler) Whoami(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "the user's id is " + strconv.Itoa(userID),
	})
}
