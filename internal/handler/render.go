package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/validation"
	"github.com/labstack/echo/v4"
)

// Flasher queues and drains one-shot user messages.
type Flasher interface {
	Add(c echo.Context, msg string)
	Pop(c echo.Context) []string
}

// render writes the named page with the pending flash messages attached.
func render(c echo.Context, flash Flasher, code int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if flash != nil {
		data["Flashes"] = flash.Pop(c)
	}
	return c.Render(code, name, data)
}

// invalidForm re-renders a form with its field errors and status 422. err
// is returned unchanged when it is not a validation failure.
func invalidForm(c echo.Context, flash Flasher, name string, data echo.Map, err error) error {
	var fe validation.FieldErrors
	if !errors.As(err, &fe) {
		return err
	}

	quoted := make([]string, 0, len(fe))
	for _, m := range fe.Messages() {
		quoted = append(quoted, "'"+m+"'")
	}
	if flash != nil {
		flash.Add(c, "Errors ["+strings.Join(quoted, ", ")+"]")
	}

	data["Errors"] = fe
	return render(c, flash, http.StatusUnprocessableEntity, name, data)
}

func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func serverError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// formHas reports whether the submitted form carried key at all.
func formHas(c echo.Context, key string) bool {
	params, err := c.FormParams()
	if err != nil {
		return false
	}
	_, ok := params[key]
	return ok
}
