package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsrekognition "github.com/aws/aws-sdk-go-v2/service/rekognition"
	awssecretsmanager "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"image-detection/handler"
	"image-detection/internal/integrations/paramstore"
	"image-detection/internal/integrations/reportapi"
	"image-detection/internal/integrations/secrets"
	"image-detection/internal/integrations/vision"
	"image-detection/internal/usecase"
)

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	bucketName := mustEnv("BUCKET_NAME_FILES")
	apiURLParamName := mustEnv("API_URL_PARAMETER_NAME")
	apiKeySecretName := mustEnv("API_KEY_SECRET_NAME")

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	visionClient, err := vision.New(awsrekognition.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create vision client", "err", err)
		os.Exit(1)
	}
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	secretsClient, err := secrets.New(awssecretsmanager.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create secrets client", "err", err)
		os.Exit(1)
	}
	reportClient := reportapi.NewClient()

	// ---- Handler ----
	processService, err := usecase.NewProcessService(visionClient, ssmClient, secretsClient, reportClient, bucketName, apiURLParamName, apiKeySecretName, logger)
	if err != nil {
		slog.Error("failed to create process service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(processService, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}
