package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minderapp/minder/internal/auth"
	"github.com/minderapp/minder/internal/logger"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

type passwordRequest struct {
	Password string `json:"password"`
	Repeated string `json:"repeated"`
}

// handleRegister handles user registration
func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	user, err := s.verifier.Register(req.Username, req.Password, req.Name, req.Email)
	if err != nil {
		msg, status := registrationMessage(err)
		return c.JSON(status, map[string]string{"error": msg})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"user_id": user.ID,
		"message": "Welcome " + user.Username + "! You have been successfully registered for Minder!",
	})
}

// registrationMessage maps a registration failure to its banner text
func registrationMessage(err error) (string, int) {
	switch {
	case errors.Is(err, auth.ErrInvalidUsername):
		return "Username is invalid! Please enter a username that is not composed solely of whitespace characters.", http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidPassword):
		return "Password is invalid! Please ensure you follow all password criteria when making a password.", http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidEmail):
		return "E-mail is invalid! Please enter a valid e-mail. Example: 'johndoe@example.com'", http.StatusBadRequest
	case errors.Is(err, auth.ErrUsernameTaken):
		return "Unable to register - a user with that username already exists!", http.StatusConflict
	default:
		return "Registration failed, please try again.", http.StatusInternalServerError
	}
}

// handleLogin verifies credentials and issues a session bound to the
// client's address
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	origin := c.RealIP()
	user, err := s.verifier.VerifyLogin(req.Username, req.Password, origin)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownUsername):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Error! Your username wasn't found, please try again or register."})
		case errors.Is(err, auth.ErrWrongPassword):
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "Error! Your password is incorrect, please try again or reset it."})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Login failed, please try again."})
		}
	}

	token, err := s.sessions.Issue(user.ID, user.PasswordHash, user.Username, user.Name, origin)
	if err != nil {
		logger.Error("Session issue failed", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Login failed, please try again."})
	}

	logger.Info("User logged in", logger.F("username", user.Username))

	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Message:  "Time to get caught up!",
	})
}

// handleLogout revokes the current session
func (s *Server) handleLogout(c echo.Context) error {
	token := c.Get("session_token").(string)
	if err := s.sessions.Revoke(token); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Your session has expired, please log in again."})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "You're logged out. Come back soon!"})
}

// handleMe returns the display identifiers seeded at login
func (s *Server) handleMe(c echo.Context) error {
	token := c.Get("session_token").(string)
	state, ok := s.sessions.State(token)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Your session has expired, please log in again."})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"user_id":  c.Get("user_id").(string),
		"username": state.Username,
		"name":     state.Name,
	})
}

// handleUpdatePassword changes the current user's password
func (s *Server) handleUpdatePassword(c echo.Context) error {
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID := c.Get("user_id").(string)
	if err := s.verifier.UpdatePassword(userID, req.Password, req.Repeated); err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordMismatch):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Error! The passwords you entered don't match, please try again."})
		case errors.Is(err, auth.ErrInvalidPassword):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Password is invalid! Please ensure you follow all password criteria when making a password."})
		case errors.Is(err, auth.ErrCommonPassword):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Your password is too common to be used, please pick another one."})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Could not update your password, please try again."})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Your password has been changed!"})
}
