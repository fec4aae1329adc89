package main

import (
	"context"

	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app"
	"github.com/yuyingcwynn/ThoughtLeaderAI-sub000/app/config"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/rs/zerolog/log"
)

var ginLambda *ginadapter.GinLambda

// init runs once per Lambda container (cold start)
func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	app.InitLogging(cfg)

	app.MustInitDB()
	app.InitStripe()

	router, err := app.NewRouter()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize router")
	}

	ginLambda = ginadapter.New(router)
}

// Handler is the Lambda entrypoint for API Gateway REST/HTTP API (proxy integration)
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
