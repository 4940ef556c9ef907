package httpserver

import (
	"errors"
	"fmt"
	"strconv"

	"phonebook/contact"
	"phonebook/errs"

	"github.com/labstack/echo/v4"
)

const (
	successMessage   = "OK"
	defaultErrorCode = "100500"

	notSavedInfo = "changes were applied but could not be saved"
)

type APIResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
	Info    string      `json:"info,omitempty"`
}

func writeSuccess(c echo.Context, status int, result interface{}) error {
	return c.JSON(status, APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	})
}

func writeList(c echo.Context, status int, data interface{}) error {
	return writeSuccess(c, status, map[string]interface{}{
		"data": data,
	})
}

// failed reports whether a mutation was rejected. A failed save is not a
// rejection: the change is live in memory.
func failed(err error) bool {
	return err != nil && !errors.Is(err, contact.ErrPersistenceFailed)
}

// writeMutation answers a mutation that went through. saveErr marks a change
// that is live in memory but was not persisted.
func (s *Server) writeMutation(c echo.Context, status int, result interface{}, saveErr error) error {
	resp := APIResponse{
		Code:    strconv.Itoa(status),
		Message: successMessage,
		Result:  result,
	}
	if saveErr != nil {
		s.Logger.Warnw("change not saved", "request_id", s.requestID(c), "error", saveErr)
		resp.Info = notSavedInfo
	}
	return c.JSON(status, resp)
}

func writeError(c echo.Context, status int, message, info string, err error) error {
	return c.JSON(status, APIResponse{
		Code:    errorCode(err, status),
		Message: message,
		Info:    info,
	})
}

func errorCode(err error, status int) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case errs.EINVALID:
			return "100010"
		case errs.ENOTFOUND:
			return "100404"
		case errs.ECONFLICT:
			return "100409"
		case errs.EUNAUTHORIZED:
			return "100401"
		case errs.ENOTIMPLEMENTED:
			return "100501"
		case errs.EINTERNAL:
			return defaultErrorCode
		}
	}

	if status != 0 {
		return fmt.Sprintf("100%03d", status)
	}
	return defaultErrorCode
}
