package apperror

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// HTTPErrorHandler is installed as echo's error handler so handlers only return
// errors and never pick status codes themselves.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := translate(err)

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Int("status", status).
		Msg("Request failed")

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, map[string]string{"error": message})
	}
	if writeErr != nil {
		logger.Error().Err(writeErr).Msg("Error writing error response")
	}
}

func translate(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Kind == KindAuth {
			return http.StatusUnauthorized, UnauthorizedMessage
		}
		return appErr.Kind.Status(), appErr.Message
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusUnauthorized {
			return http.StatusUnauthorized, UnauthorizedMessage
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	}

	return http.StatusInternalServerError, err.Error()
}
