package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painelweb/painel/internal/apperr"
	"github.com/painelweb/painel/internal/utils"
)

// FormatDate renders ?date=<value> with the token format in ?format=
// (defaults to DD/MM/YYYY), always in UTC.  The panel uses it to display
// timestamps the way the user's locale expects.
func FormatDate(c echo.Context) error {
	formatted, err := utils.FormatDate(c.QueryParam("date"), c.QueryParam("format"))
	if err != nil {
		return apperr.NewValidation(err.Error(), "Check the date and format parameters")
	}
	return c.JSON(http.StatusOK, echo.Map{"date": formatted})
}
