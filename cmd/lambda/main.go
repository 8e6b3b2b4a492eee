// Command lambda wraps the session façade behind an API Gateway
// proxy integration, for deployments that run the HTTP layer as a
// Lambda function instead of a long-lived server.
package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/qwirkleio/qwirkle/estimator"
	"github.com/qwirkleio/qwirkle/internal/config"
	"github.com/qwirkleio/qwirkle/internal/notify"
	"github.com/qwirkleio/qwirkle/session"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	bus, err := notify.Connect(cfg.NATSURL)
	if err != nil {
		log.Warn().Err(err).Msg("lambda: nats connect failed, notifications disabled")
		bus = nil
	}

	est, err := buildEstimator(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("lambda: building estimator")
	}
	srv := session.NewServer(est, bus)

	scriptSource := ""
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ScriptPath).Msg("lambda: failed reading solver script, scripted strategy will fall back to greedy")
		} else {
			scriptSource = string(data)
		}
	}
	srv.SetDefaultStrategy(cfg.SolverStrategy, scriptSource)

	mux = srv.Mux()
}

// buildEstimator selects estimator.Remote when cfg.LambdaFunctionName
// is configured, otherwise the local Parallel estimator. A Lambda
// deployment recursing into another Lambda function is an unusual but
// valid configuration (e.g. a thin API-Gateway-facing function
// delegating heavy simulation to a dedicated one).
func buildEstimator(cfg config.Config) (estimator.Estimator, error) {
	if cfg.LambdaFunctionName == "" {
		return estimator.NewParallel(cfg.EstimatorSimulations), nil
	}
	return estimator.NewRemote(context.Background(), cfg.LambdaFunctionName, cfg.EstimatorSimulations)
}

// handle adapts an API Gateway proxy request to an in-process
// net/http round trip against the session mux, then adapts the
// response back.
func handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod, req.Path, bytes.NewBufferString(req.Body))
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httpReq)

	headers := make(map[string]string, len(rec.Header()))
	for k := range rec.Header() {
		headers[k] = rec.Header().Get(k)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: rec.Code,
		Headers:    headers,
		Body:       rec.Body.String(),
	}, nil
}

func main() {
	lambda.Start(handle)
}
