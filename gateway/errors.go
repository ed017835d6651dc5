package gateway

import (
	goerrors "errors"
	"social-lab/errors"

	"github.com/gofiber/fiber/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func (g *Gateway) handleError(c *fiber.Ctx, err error) error {
	code, detail := httpError(err)
	if code >= fiber.StatusInternalServerError {
		g.log.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(errorResponse{Detail: detail})
}

func httpError(err error) (int, string) {
	switch {
	case goerrors.Is(err, errors.ErrServiceNotFound):
		return fiber.StatusNotFound, "Service not found"
	case goerrors.Is(err, errors.ErrServiceInactive):
		return fiber.StatusServiceUnavailable, "Service unavailable"
	}

	var fiberErr *fiber.Error
	if goerrors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	st, ok := status.FromError(err)
	if !ok {
		return fiber.StatusInternalServerError, err.Error()
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return fiber.StatusBadRequest, st.Message()
	case codes.Unauthenticated:
		return fiber.StatusUnauthorized, st.Message()
	case codes.PermissionDenied:
		return fiber.StatusForbidden, st.Message()
	case codes.NotFound:
		return fiber.StatusNotFound, st.Message()
	case codes.AlreadyExists:
		return fiber.StatusConflict, st.Message()
	case codes.Unavailable, codes.DeadlineExceeded:
		return fiber.StatusServiceUnavailable, st.Message()
	default:
		return fiber.StatusInternalServerError, st.Message()
	}
}
