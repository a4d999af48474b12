// Package flash keeps one-shot user messages in a signed cookie session.
package flash

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const sessionName = "listing_flash"

type Store struct {
	store sessions.Store
}

func NewStore(key []byte) *Store {
	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// Add queues msg for the next page rendered for this client. Messages added
// while handling a request are also visible to Pop within that request.
func (s *Store) Add(c echo.Context, msg string) {
	sess := s.session(c)
	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Warn().Err(err).Msg("save flash session")
	}
}

// Pop returns and clears the queued messages.
func (s *Store) Pop(c echo.Context) []string {
	sess := s.session(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Warn().Err(err).Msg("save flash session")
	}

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// session returns the request's session. A cookie signed with an old key
// yields a fresh session together with an error, which is only logged.
func (s *Store) session(c echo.Context) *sessions.Session {
	sess, err := s.store.Get(c.Request(), sessionName)
	if err != nil {
		log.Debug().Err(err).Msg("discarding unreadable flash cookie")
	}
	return sess
}
