package vision

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"image-detection/internal/domain"
)

const (
	maxLabels     = 10
	minConfidence = 75
	personLabel   = "Person"
)

// rekognitionAPI is the minimal Rekognition interface required by Client.
// *rekognition.Client from aws-sdk-go-v2 satisfies this interface.
type rekognitionAPI interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// Detector is the interface that wraps GetLabels. Consumers should depend on
// this interface rather than the concrete *Client so they remain testable
// without real AWS calls.
type Detector interface {
	GetLabels(ctx context.Context, bucket, fileID, userID, transformedFileKey string) error
}

// Client wraps Amazon Rekognition for person detection on stored images.
type Client struct {
	api rekognitionAPI
}

// New creates a Client with the given Rekognition API implementation.
func New(api rekognitionAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("vision: api must not be nil")
	}
	return &Client{api: api}, nil
}

// GetLabels runs label detection against the transformed object and
// classifies the outcome: nil when a person is present, a
// *domain.DetectionError for the two recognized soft failures, and a wrapped
// SDK error for anything else.
func (c *Client) GetLabels(ctx context.Context, bucket, fileID, userID, transformedFileKey string) error {
	if c.api == nil {
		return errors.New("vision: client not initialized")
	}

	out, err := c.api.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(transformedFileKey),
			},
		},
		MaxLabels:     aws.Int32(maxLabels),
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return fmt.Errorf("vision: detect labels for file %q (user %q): %w", fileID, userID, err)
	}
	if out == nil || len(out.Labels) == 0 {
		return &domain.DetectionError{Kind: domain.NoLabelsFound, FileID: fileID}
	}
	for _, label := range out.Labels {
		if aws.ToString(label.Name) == personLabel {
			return nil
		}
	}
	return &domain.DetectionError{Kind: domain.NoPersonFound, FileID: fileID}
}
