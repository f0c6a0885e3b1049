package handler

import "github.com/labstack/echo/v4"

// Stable machine-checkable error kinds carried in every failure
// envelope next to the human-readable message. Clients branch on
// "code", never on message text.
const (
	CodeValidation     = "VALIDATION"
	CodeAuthentication = "AUTHENTICATION"
	CodeAuthorization  = "AUTHORIZATION"
	CodeConflict       = "CONFLICT"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL"
)

// jsonError writes the uniform failure envelope. Raw repository or
// driver errors never reach the client; callers translate them to the
// nearest taxonomy kind first.
func jsonError(c echo.Context, status int, code, msg string) error {
	return c.JSON(status, echo.Map{"error": msg, "code": code})
}
