package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// secretsmanagerAPI is the minimal AWS Secrets Manager interface required by
// Client. *secretsmanager.Client from aws-sdk-go-v2 satisfies this interface.
type secretsmanagerAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Getter is the interface that wraps GetSecret. Consumers should depend on
// this interface rather than the concrete *Client so they remain testable
// without real AWS calls.
type Getter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Client wraps AWS Secrets Manager for secret retrieval.
type Client struct {
	api secretsmanagerAPI
}

// New creates a Client with the given Secrets Manager API implementation.
func New(api secretsmanagerAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("secrets: api must not be nil")
	}
	return &Client{api: api}, nil
}

func (c *Client) GetSecret(ctx context.Context, name string) (string, error) {
	if c.api == nil {
		return "", errors.New("secrets: client not initialized")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("secrets: name is required")
	}

	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		return "", fmt.Errorf("secrets: get secret %q: %w", name, err)
	}
	if out == nil || out.SecretString == nil || *out.SecretString == "" {
		return "", errors.New("secrets: secret has no string value")
	}
	return *out.SecretString, nil
}
