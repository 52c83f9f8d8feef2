package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/minderapp/minder/internal/model"
	"github.com/minderapp/minder/internal/reminder"
)

type createReminderRequest struct {
	Title       string `json:"title"`
	DueDate     string `json:"due_date"` // ISO-8601
	Tags        string `json:"tags"`
	Description string `json:"description"`
}

type listRemindersResponse struct {
	Reminders []model.Reminder `json:"reminders"`
	Message   string           `json:"message"`
}

// handleListReminders returns the user's reminders due within the requested
// window. ?hours=N selects the next N hours; a negative value selects past
// reminders. The UI presets are 24, 168, 731, 8760 and -72.
func (s *Server) handleListReminders(c echo.Context) error {
	userID := c.Get("user_id").(string)

	hours := 24
	if v := c.QueryParam("hours"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid hours value"})
		}
		hours = parsed
	}

	reminders, summary, err := s.engine.Window(userID, hours)
	if err != nil {
		// store failure: degrade to zero results rather than a fault page
		return c.JSON(http.StatusOK, listRemindersResponse{
			Reminders: []model.Reminder{},
			Message:   "Could not retrieve reminders, please try again.",
		})
	}

	return c.JSON(http.StatusOK, listRemindersResponse{
		Reminders: reminders,
		Message:   summary,
	})
}

// handleCreateReminder validates and stores a new reminder
func (s *Server) handleCreateReminder(c echo.Context) error {
	var req createReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	userID := c.Get("user_id").(string)
	err := s.engine.Create(userID, req.Title, req.DueDate, req.Tags, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrInvalidDeadline):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Error! The reminder date was invalid. Please pick a valid date in the future."})
		case errors.Is(err, reminder.ErrInvalidTitle):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Error! Your title was either too short or too long, please use a different title."})
		case errors.Is(err, reminder.ErrInvalidTags):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Error! The tag string you entered is too long (>350 characters). Please shorten the reminder tag string and try again."})
		case errors.Is(err, reminder.ErrInvalidDescription):
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "Error! The description you entered is too long (>1500 characters). Please shorten the description and try again."})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "Could not save your reminder, please try again."})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Your reminder was saved!"})
}
