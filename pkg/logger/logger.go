package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("user_id", userID)),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogBookingBatchCreated logs a committed booking batch
func (l *Logger) LogBookingBatchCreated(ctx context.Context, userID string, count int, groupID string) {
	l.Logger.InfoContext(ctx,
		"Booking Batch Created",
		slog.String("user_id", userID),
		slog.Int("bookings", count),
		slog.String("group_id", groupID),
	)
}

// LogBookingCancelled logs a booking cancellation
func (l *Logger) LogBookingCancelled(ctx context.Context, bookingID, userID string) {
	l.Logger.InfoContext(ctx,
		"Booking Cancelled",
		slog.String("booking_id", bookingID),
		slog.String("user_id", userID),
	)
}

// LogGroupCancelled logs a group cancellation
func (l *Logger) LogGroupCancelled(ctx context.Context, groupID, userID string, count int) {
	l.Logger.InfoContext(ctx,
		"Booking Group Cancelled",
		slog.String("group_id", groupID),
		slog.String("user_id", userID),
		slog.Int("bookings", count),
	)
}

// LogBookingConflict logs a batch rejected by the uniqueness constraint
func (l *Logger) LogBookingConflict(ctx context.Context, userID string, count int) {
	l.Logger.WarnContext(ctx,
		"Booking Conflict",
		slog.String("user_id", userID),
		slog.Int("bookings", count),
	)
}

// LogSeatBlocked logs a seat block and how many bookings it affected
func (l *Logger) LogSeatBlocked(ctx context.Context, seatID, seatCode string, affectedBookings int) {
	l.Logger.InfoContext(ctx,
		"Seat Blocked",
		slog.String("seat_id", seatID),
		slog.String("seat_code", seatCode),
		slog.Int("affected_bookings", affectedBookings),
	)
}

// LogAllocationDecided logs an allocation approval or rejection
func (l *Logger) LogAllocationDecided(ctx context.Context, allocationID, decidedBy, status string) {
	l.Logger.InfoContext(ctx,
		"Allocation Decided",
		slog.String("allocation_id", allocationID),
		slog.String("decided_by", decidedBy),
		slog.String("status", status),
	)
}

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
