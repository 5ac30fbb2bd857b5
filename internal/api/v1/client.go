package apiv1

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// TrainerServiceClient calls the trainer Connect service. kotoba quiz
// --connect uses it for questions and judgments.
type TrainerServiceClient struct {
	getRandomEntry *connect.Client[GetRandomEntryRequest, GetRandomEntryResponse]
	checkAnswer    *connect.Client[CheckAnswerRequest, CheckAnswerResponse]
	heartbeat      *connect.Client[HeartbeatRequest, HeartbeatResponse]
}

func NewTrainerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TrainerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &TrainerServiceClient{
		getRandomEntry: connect.NewClient[GetRandomEntryRequest, GetRandomEntryResponse](
			httpClient, baseURL+TrainerServiceGetRandomEntryProcedure, opts...),
		checkAnswer: connect.NewClient[CheckAnswerRequest, CheckAnswerResponse](
			httpClient, baseURL+TrainerServiceCheckAnswerProcedure, opts...),
		heartbeat: connect.NewClient[HeartbeatRequest, HeartbeatResponse](
			httpClient, baseURL+TrainerServiceHeartbeatProcedure, opts...),
	}
}

func (c *TrainerServiceClient) GetRandomEntry(ctx context.Context, req *connect.Request[GetRandomEntryRequest]) (*connect.Response[GetRandomEntryResponse], error) {
	return c.getRandomEntry.CallUnary(ctx, req)
}

func (c *TrainerServiceClient) CheckAnswer(ctx context.Context, req *connect.Request[CheckAnswerRequest]) (*connect.Response[CheckAnswerResponse], error) {
	return c.checkAnswer.CallUnary(ctx, req)
}

func (c *TrainerServiceClient) Heartbeat(ctx context.Context, req *connect.Request[HeartbeatRequest]) (*connect.Response[HeartbeatResponse], error) {
	return c.heartbeat.CallUnary(ctx, req)
}
