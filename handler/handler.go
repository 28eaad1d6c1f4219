package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"image-detection/internal/domain"
)

// RecordProcessor handles one decoded change record.
type RecordProcessor interface {
	Process(ctx context.Context, rec domain.ChangeRecord) error
}

// Handler consumes DynamoDB stream batches. Records are processed strictly in
// order; the first hard failure stops the batch and its sequence number is
// returned as a batch item failure, so the stream redelivers from that record
// onward.
type Handler struct {
	processor RecordProcessor
	logger    *slog.Logger
}

func NewHandler(processor RecordProcessor, logger *slog.Logger) (*Handler, error) {
	if processor == nil {
		return nil, errors.New("handler: processor must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{processor: processor, logger: logger}, nil
}

func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	for _, record := range event.Records {
		if record.EventName != "INSERT" {
			h.logger.DebugContext(ctx, "skipping record", "eventName", record.EventName, "eventId", record.EventID)
			continue
		}

		rec, err := decodeRecord(record)
		if err == nil {
			err = h.processor.Process(ctx, rec)
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "record processing failed",
				"eventId", record.EventID,
				"sequenceNumber", record.Change.SequenceNumber,
				"err", err,
			)
			return events.DynamoDBEventResponse{
				BatchItemFailures: []events.DynamoDBBatchItemFailure{
					{ItemIdentifier: record.Change.SequenceNumber},
				},
			}, nil
		}
	}
	return events.DynamoDBEventResponse{}, nil
}

// decodeRecord extracts the new-image attributes the processor needs. The
// stream filter normally guarantees INSERT records carry a NewImage with all
// three attributes; anything else is a hard failure for the record.
func decodeRecord(record events.DynamoDBEventRecord) (domain.ChangeRecord, error) {
	img := record.Change.NewImage
	if len(img) == 0 {
		return domain.ChangeRecord{}, fmt.Errorf("handler: record %s has no new image", record.EventID)
	}

	fileID, err := stringAttr(img, "id")
	if err != nil {
		return domain.ChangeRecord{}, err
	}
	userID, err := stringAttr(img, "userId")
	if err != nil {
		return domain.ChangeRecord{}, err
	}
	transformedFileKey, err := stringAttr(img, "transformedFileKey")
	if err != nil {
		return domain.ChangeRecord{}, err
	}

	return domain.ChangeRecord{
		FileID:             fileID,
		UserID:             userID,
		TransformedFileKey: transformedFileKey,
	}, nil
}

func stringAttr(img map[string]events.DynamoDBAttributeValue, key string) (string, error) {
	v, ok := img[key]
	if !ok {
		return "", fmt.Errorf("handler: missing attribute %q", key)
	}
	if v.DataType() != events.DataTypeString {
		return "", fmt.Errorf("handler: attribute %q is not a string", key)
	}
	s := v.String()
	if s == "" {
		return "", fmt.Errorf("handler: attribute %q is empty", key)
	}
	return s, nil
}
