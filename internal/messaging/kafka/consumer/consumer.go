package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"hris-backend/internal/events"
	"hris-backend/internal/notification"
)

// ConsumeLeaveLifecycle turns leave lifecycle events into notification rows.
// Events are dispatched on the event_type header; insertion is idempotent per
// event id, so redeliveries after a failed commit are harmless.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		if err := handleLeaveMessage(ctx, msg, notificationService, log); err != nil {
			log.Error("handle leave lifecycle message failed", zap.Error(err))
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
		}
	}
}

func handleLeaveMessage(
	ctx context.Context,
	msg kafkago.Message,
	notificationService notification.Service,
	log *zap.Logger,
) error {
	switch eventType(msg) {
	case events.TypeLeaveSubmitted:
		var evt events.LeaveSubmittedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Error("decode leave.submitted event failed", zap.Error(err))
			return nil
		}
		return notificationService.RecordLeaveSubmitted(ctx, evt)

	case events.TypeLeaveReviewed:
		var evt events.LeaveReviewedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			log.Error("decode leave.reviewed event failed", zap.Error(err))
			return nil
		}
		return notificationService.RecordLeaveReviewed(ctx, evt)

	default:
		log.Warn("unknown leave lifecycle event type, skipping",
			zap.String("event_type", eventType(msg)))
		return nil
	}
}

func eventType(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}
