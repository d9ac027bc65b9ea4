package auth

import (
	"errors"
	"os"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"todo-service/internal/apperror"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ClaimsContextKey is where the gate stores the verified *Claims.
const ClaimsContextKey = "user"

var errSessionRevoked = errors.New("session revoked or unknown")

// Gate rejects requests without a valid bearer token. Every failure renders the same
// 401; the cause only reaches the log.
func Gate(codec *TokenCodec, sessions SessionStore) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsContextKey,
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			claims, err := codec.Verify(auth)
			if err != nil {
				return nil, err
			}

			ok, err := sessions.Exists(c.Request().Context(), claims)
			if err != nil {
				logger.Error().Err(err).Msgf("Error checking session for user %d", claims.UserID)
				return nil, err
			}
			if !ok {
				return nil, errSessionRevoked
			}

			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Warn().Err(err).Str("path", c.Path()).Msg("Rejected request")
			return apperror.Auth(err)
		},
	})
}

// CurrentClaims returns the claims the gate attached to c.
func CurrentClaims(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*Claims)
	return claims, ok
}

// UserID returns the authenticated user id, or an AuthError when the gate did not run.
func UserID(c echo.Context) (int, error) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return 0, apperror.Auth(errors.New("no claims in context"))
	}
	return claims.UserID, nil
}
