package appErrors

import (
	"github.com/gin-gonic/gin"
)

// HandleError renders err as the standard JSON envelope
// {success:false, message, code[, details]} with the mapped HTTP status.
// Anything that is not an *AppError is treated as an internal fault and
// redacted.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	body := gin.H{
		"success": false,
		"message": appErr.Message,
		"code":    appErr.Code,
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}

	c.JSON(appErr.HTTPCode, body)
}

// AsAppError extracts an *AppError from err when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
