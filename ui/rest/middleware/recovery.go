package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/kabang/kabang/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Recovery turns panics raised by utils.PanicIfNeeded into error responses.
func Recovery() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				_ = WriteError(ctx, err)
			}
		}()

		return ctx.Next()
	}
}

// ErrorHandler is the fiber ErrorHandler for errors returned by handlers.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	return WriteError(ctx, err)
}

// WriteError maps typed errors to their status. Anything unexpected is a 500
// and gets logged.
func WriteError(ctx *fiber.Ctx, err error) error {
	res := utils.ErrorResponse{
		Status: http.StatusInternalServerError,
		Code:   "INTERNAL_SERVER_ERROR",
		Error:  err.Error(),
	}

	var generic pkgError.GenericError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &generic):
		res.Status = generic.StatusCode()
		res.Code = generic.ErrCode()
		res.Error = generic.Error()
	case errors.As(err, &fiberErr):
		res.Status = fiberErr.Code
		res.Code = http.StatusText(fiberErr.Code)
		res.Error = fiberErr.Message
	default:
		logrus.WithError(err).Errorf("[REST] %s %s failed", ctx.Method(), ctx.Path())
	}

	return ctx.Status(res.Status).JSON(res)
}
