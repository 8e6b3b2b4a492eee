package estimator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/game"
)

// Remote estimates win probability by invoking an AWS Lambda function
// that runs the same Monte Carlo simulation server-side. It's an
// opt-in alternative to Parallel for deployments that want estimation
// off the request-handling host entirely.
type Remote struct {
	client       *lambda.Client
	functionName string
	simulations  int
}

// remoteRequest/remoteResponse are the payload sent to the configured
// Lambda function and the reply decoded from it. cmd/lambda serves the
// HTTP session façade and does not handle this payload.
type remoteRequest struct {
	Board       map[string]tilePayload `json:"board"`
	Hands       [2][]tilePayload       `json:"hands"`
	Seed        int64                  `json:"seed"`
	Current     int                    `json:"current"`
	Simulations int                    `json:"simulations"`
}

type tilePayload struct {
	Shape int `json:"shape"`
	Color int `json:"color"`
}

type remoteResponse struct {
	WinProb0   float64 `json:"win_prob_0"`
	WinProb1   float64 `json:"win_prob_1"`
	TieProb    float64 `json:"tie_prob"`
	N          int     `json:"n"`
	Confidence float64 `json:"confidence"`
}

// NewRemote builds a Remote estimator targeting the given Lambda
// function name, using the default AWS credential chain and region
// resolution. n <= 0 selects DefaultSimulations.
func NewRemote(ctx context.Context, functionName string, n int) (*Remote, error) {
	if n <= 0 {
		n = DefaultSimulations
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Remote{
		client:       lambda.NewFromConfig(cfg),
		functionName: functionName,
		simulations:  n,
	}, nil
}

// Estimate marshals state to the wire payload the lambda function
// expects, invokes it with up to 3 attempts in all, and unmarshals the
// result.
func (r *Remote) Estimate(ctx context.Context, state *game.GameState) (Result, error) {
	payload, err := json.Marshal(toRemoteRequest(state, r.simulations))
	if err != nil {
		return Result{}, fmt.Errorf("marshaling estimate request: %w", err)
	}

	var out *lambda.InvokeOutput
	err = retry.Do(
		func() error {
			var invokeErr error
			out, invokeErr = r.client.Invoke(ctx, &lambda.InvokeInput{
				FunctionName: aws.String(r.functionName),
				Payload:      payload,
			})
			return invokeErr
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n).Msg("remote estimator invoke retry")
		}),
	)
	if err != nil {
		return Result{}, fmt.Errorf("invoking estimator lambda: %w", err)
	}
	if out.FunctionError != nil {
		return Result{}, fmt.Errorf("estimator lambda returned an error: %s", *out.FunctionError)
	}

	var resp remoteResponse
	if err := json.Unmarshal(out.Payload, &resp); err != nil {
		return Result{}, fmt.Errorf("decoding estimate response: %w", err)
	}
	return Result{
		WinProb0:   resp.WinProb0,
		WinProb1:   resp.WinProb1,
		TieProb:    resp.TieProb,
		N:          resp.N,
		Confidence: resp.Confidence,
	}, nil
}

func toRemoteRequest(state *game.GameState, simulations int) remoteRequest {
	req := remoteRequest{
		Board:       make(map[string]tilePayload),
		Seed:        state.Seed(),
		Current:     state.CurrentPlayer(),
		Simulations: simulations,
	}
	for _, pos := range state.Board().Positions() {
		t, _ := state.Board().Get(pos)
		req.Board[fmt.Sprintf("%d,%d", pos.Row, pos.Col)] = tilePayload{Shape: int(t.Shape), Color: int(t.Color)}
	}
	for p := 0; p < game.NumPlayers; p++ {
		for _, t := range state.Hand(p).TilesUnsafe() {
			req.Hands[p] = append(req.Hands[p], tilePayload{Shape: int(t.Shape), Color: int(t.Color)})
		}
	}
	return req
}
