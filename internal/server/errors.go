package server

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/trainer"
)

func httpStatus(err error) int {
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidRequest), errors.Is(err, trainer.ErrMissingSession):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func connectCode(err error) connect.Code {
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, errInvalidRequest), errors.Is(err, trainer.ErrMissingSession):
		return connect.CodeInvalidArgument
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}

func toConnectError(err error) *connect.Error {
	return connect.NewError(connectCode(err), err)
}
