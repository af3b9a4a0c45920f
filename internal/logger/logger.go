package logger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Product_Catalog/internal/models"

	"github.com/google/uuid"
)

// drainTimeout bounds how long Close waits for pending inserts
const drainTimeout = 5 * time.Second

// DatabaseLogger implements the Service interface using a database backend
type DatabaseLogger struct {
	db           DatabaseConnection
	drainTimeout time.Duration

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// NewDatabaseLogger creates a new database logger
func NewDatabaseLogger(db DatabaseConnection) Service {
	return &DatabaseLogger{
		db:           db,
		drainTimeout: drainTimeout,
	}
}

// LogInfo logs an informational message (no severity)
func (l *DatabaseLogger) LogInfo(ctx context.Context, operation, message string, metadata map[string]interface{}) {
	l.logEntry(ctx, "", operation, "", message, nil, metadata)
}

// LogSuccess logs a successful operation (no severity)
func (l *DatabaseLogger) LogSuccess(ctx context.Context, operation, targetName, message string, metadata map[string]interface{}) {
	l.logEntry(ctx, "", operation, targetName, message, nil, metadata)
}

// LogError logs an error with required severity
func (l *DatabaseLogger) LogError(ctx context.Context, operation, targetName, message string, err error, severity models.LogSeverity, metadata map[string]interface{}) {
	l.logEntry(ctx, severity, operation, targetName, message, err, metadata)
}

// logEntry stores the entry asynchronously so a slow log table never blocks a request
func (l *DatabaseLogger) logEntry(ctx context.Context, severity models.LogSeverity, operation, targetName, message string, err error, metadata map[string]interface{}) {
	entry := newLogEntry(ctx, severity, operation, targetName, message, err, metadata)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		fmt.Printf("Dropped log entry after close: %s %s\n", operation, message)
		return
	}
	l.pending.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.pending.Done()

		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := l.db.InsertLog(logCtx, entry); err != nil {
			fmt.Printf("Failed to insert log entry: %v\n", err)
		}
	}()
}

// Close stops accepting entries, waits up to drainTimeout for pending inserts,
// then closes the database connection
func (l *DatabaseLogger) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		l.pending.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-time.After(l.drainTimeout):
		fmt.Printf("Closing log database with pending entries after %s\n", l.drainTimeout)
	}

	return l.db.Close()
}

// newLogEntry builds an entry attributed to the process found in ctx
func newLogEntry(ctx context.Context, severity models.LogSeverity, operation, targetName, message string, err error, metadata map[string]interface{}) *models.LogEntry {
	logEvent := GetLogEvent(ctx)

	entry := &models.LogEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Severity:    severity,
		Message:     message,
		Operation:   operation,
		TargetName:  targetName,
		ProcessID:   logEvent.ProcessID,
		ProcessType: logEvent.ProcessType,
		ClientIP:    logEvent.ClientIP,
		Metadata:    metadata,
	}

	if err != nil {
		entry.Error = err.Error()
	}

	return entry
}

// LogOperations defines constants for common operations
const (
	OpListProducts     = "list_products"
	OpGetProduct       = "get_product"
	OpCreateProduct    = "create_product"
	OpUpdateProduct    = "update_product"
	OpDeleteProduct    = "delete_product"
	OpCreateDepartment = "create_department"
	OpDeleteDepartment = "delete_department"
	OpCreateCategory   = "create_category"
	OpDeleteCategory   = "delete_category"
	OpSummaryReport    = "summary_report"
	OpCacheHit         = "cache_hit"
	OpCacheMiss        = "cache_miss"
	OpCacheBypass      = "cache_bypass"
	OpCacheInvalidate  = "cache_invalidate"
	OpRateLimited      = "rate_limited"
	OpServerStart      = "server_start"
	OpServerShutdown   = "server_shutdown"
	OpHealthCheck      = "health_check"
	OpHTTPRequest      = "http_request"
)
