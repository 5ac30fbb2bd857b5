package server

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
)

// connectHandler returns the path prefix and handler of the trainer
// Connect service.
func (s *Server) connectHandler() (string, http.Handler) {
	opts := []connect.HandlerOption{connect.WithCodec(apiv1.Codec{})}

	mux := http.NewServeMux()
	mux.Handle(apiv1.TrainerServiceGetRandomEntryProcedure, connect.NewUnaryHandler(
		apiv1.TrainerServiceGetRandomEntryProcedure,
		unary(s.getRandomEntry),
		opts...,
	))
	mux.Handle(apiv1.TrainerServiceCheckAnswerProcedure, connect.NewUnaryHandler(
		apiv1.TrainerServiceCheckAnswerProcedure,
		unary(s.checkAnswerMessage),
		opts...,
	))
	mux.Handle(apiv1.TrainerServiceHeartbeatProcedure, connect.NewUnaryHandler(
		apiv1.TrainerServiceHeartbeatProcedure,
		unary(s.heartbeatMessage),
		opts...,
	))
	return "/" + apiv1.TrainerServiceName + "/", mux
}

func unary[Req, Res any](fn func(context.Context, *Req) (*Res, error)) func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error) {
	return func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		res, err := fn(ctx, req.Msg)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(res), nil
	}
}
