package consumer

import (
	"context"
	"encoding/json"
	"net/http"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/events"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type AttendanceRecorder interface {
	Record(ctx context.Context, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error)
}

// ConsumeAttendanceMarked writes attendance-marked events into the ledger
// until ctx is cancelled. Messages that can never succeed (bad JSON,
// rejected input) are committed and skipped; infrastructure failures are
// left uncommitted.
func ConsumeAttendanceMarked(
	ctx context.Context,
	reader MessageReader,
	recorder AttendanceRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_marked")
	log.Info("attendance consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance consumer stopped")
				return
			}
			log.Error("fetch attendance message failed", zap.Error(err))
			continue
		}

		if handleAttendanceMarked(ctx, recorder, msg, log) {
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit attendance message failed", zap.Error(err))
			}
		}
	}
}

// handleAttendanceMarked reports whether msg should be committed.
func handleAttendanceMarked(ctx context.Context, recorder AttendanceRecorder, msg kafkago.Message, log *zap.Logger) bool {
	var event events.AttendanceMarkedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode attendance_marked event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}

	resp, err := recorder.Record(ctx, event.MarkedBy, attendance.RecordAttendanceRequest{
		EmployeeID:   event.EmployeeID,
		Date:         event.Date,
		Present:      event.Present,
		IsPaidLeave:  event.IsPaidLeave,
		WorkingHours: event.WorkingHours,
		RecordType:   event.RecordType,
		ProjectRef:   event.ProjectRef,
	})
	if err != nil {
		fields := []zap.Field{
			zap.String("employee_id", event.EmployeeID),
			zap.String("date", event.Date),
			zap.Error(err),
		}
		if apperror.ToHTTP(err).Status < http.StatusInternalServerError {
			log.Warn("attendance_marked event rejected, skipping", fields...)
			return true
		}
		log.Error("record attendance from event failed", fields...)
		return false
	}

	log.Info("attendance recorded from event",
		zap.String("attendance_id", resp.ID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("date", event.Date),
	)
	return true
}
