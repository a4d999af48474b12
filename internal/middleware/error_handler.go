package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// FlashSource supplies the pending flash messages shown on error pages.
type FlashSource interface {
	Pop(c echo.Context) []string
}

// ErrorHandler returns the echo HTTPErrorHandler. It renders errors/500.html
// for server errors and errors/404.html for every client error, and falls
// back to a JSON body when no page can be rendered. Messages of 5xx errors
// are logged but never sent to the client. flashes may be nil.
func ErrorHandler(flashes FlashSource) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		handleError(err, c, flashes)
	}
}

func handleError(err error, c echo.Context, flashes FlashSource) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		if he.Internal != nil {
			err = he.Internal
		}
	}

	if code >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Msg("request failed")
		msg = http.StatusText(code)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	page := "errors/500.html"
	if code < http.StatusInternalServerError {
		page = "errors/404.html"
	}
	if c.Echo().Renderer != nil {
		data := echo.Map{"Code": code, "Message": msg}
		if flashes != nil {
			data["Flashes"] = flashes.Pop(c)
		}
		rerr := c.Render(code, page, data)
		if rerr == nil {
			return
		}
		log.Warn().Err(rerr).Str("template", page).Msg("render error page")
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
