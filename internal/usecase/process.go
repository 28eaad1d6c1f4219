package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"image-detection/internal/domain"
)

// LabelDetector runs label detection for one stored image and classifies the
// outcome (see domain.DetectionError).
type LabelDetector interface {
	GetLabels(ctx context.Context, bucket, fileID, userID, transformedFileKey string) error
}

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

type IssueReporter interface {
	ReportImageIssue(ctx context.Context, fileID, userID string, creds domain.Credentials) error
}

// ProcessService runs person detection for each change record. When detection
// classifies the image as having no person or no labels, it fetches reporting
// credentials and files an issue report, then absorbs the failure. Any other
// failure is returned to the caller.
type ProcessService struct {
	labels   LabelDetector
	params   ParamGetter
	secrets  SecretGetter
	reporter IssueReporter
	logger   *slog.Logger

	bucketName       string
	apiURLParamName  string
	apiKeySecretName string
}

func NewProcessService(labels LabelDetector, params ParamGetter, secrets SecretGetter, reporter IssueReporter, bucketName, apiURLParamName, apiKeySecretName string, logger *slog.Logger) (*ProcessService, error) {
	if labels == nil {
		return nil, errors.New("usecase: label detector must not be nil")
	}
	if params == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if secrets == nil {
		return nil, errors.New("usecase: secret getter must not be nil")
	}
	if reporter == nil {
		return nil, errors.New("usecase: issue reporter must not be nil")
	}
	if strings.TrimSpace(bucketName) == "" {
		return nil, errors.New("usecase: bucket name must not be empty")
	}
	if strings.TrimSpace(apiURLParamName) == "" {
		return nil, errors.New("usecase: api url parameter name must not be empty")
	}
	if strings.TrimSpace(apiKeySecretName) == "" {
		return nil, errors.New("usecase: api key secret name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessService{
		labels:           labels,
		params:           params,
		secrets:          secrets,
		reporter:         reporter,
		logger:           logger,
		bucketName:       bucketName,
		apiURLParamName:  apiURLParamName,
		apiKeySecretName: apiKeySecretName,
	}, nil
}

// Process handles one change record. It returns nil both when detection
// succeeds and when a soft detection failure was reported; any other error is
// a hard failure for the record.
func (s *ProcessService) Process(ctx context.Context, rec domain.ChangeRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	// All logs for this record carry the file and user ids for correlation.
	logger := s.logger.With("fileId", rec.FileID, "userId", rec.UserID)

	err := s.labels.GetLabels(ctx, s.bucketName, rec.FileID, rec.UserID, rec.TransformedFileKey)
	if err == nil {
		return nil
	}

	var detErr *domain.DetectionError
	if !errors.As(err, &detErr) {
		return fmt.Errorf("usecase: label detection: %w", err)
	}

	logger.WarnContext(ctx, "no person found in the image", "kind", string(detErr.Kind))

	// Credentials are fetched fresh for every report, parameter before secret.
	apiURL, err := s.params.GetParameter(ctx, s.apiURLParamName)
	if err != nil {
		return fmt.Errorf("usecase: load api url parameter: %w", err)
	}
	apiKey, err := s.secrets.GetSecret(ctx, s.apiKeySecretName)
	if err != nil {
		return fmt.Errorf("usecase: load api key secret: %w", err)
	}

	creds := domain.Credentials{APIURL: apiURL, APIKey: apiKey}
	if err := s.reporter.ReportImageIssue(ctx, rec.FileID, rec.UserID, creds); err != nil {
		return fmt.Errorf("usecase: report image issue: %w", err)
	}

	logger.InfoContext(ctx, "image issue reported")
	return nil
}

func validateRecord(rec domain.ChangeRecord) error {
	if strings.TrimSpace(rec.FileID) == "" {
		return errors.New("usecase: record file id must not be empty")
	}
	if strings.TrimSpace(rec.UserID) == "" {
		return errors.New("usecase: record user id must not be empty")
	}
	if strings.TrimSpace(rec.TransformedFileKey) == "" {
		return errors.New("usecase: record transformed file key must not be empty")
	}
	return nil
}
