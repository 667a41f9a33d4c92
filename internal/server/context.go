package server

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pinkpantherking/calassist/internal/calendar"
	"github.com/pinkpantherking/calassist/internal/instrumentation"
	"github.com/pinkpantherking/calassist/internal/logging"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	calendarClients map[string]*calendar.Client // Maps account name to Calendar client
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	// Initialize client map
	calendarClients := make(map[string]*calendar.Client)

	// Try to create default Calendar client, but don't fail if token is missing
	// Clients will be lazily initialized when first needed
	if calendar.HasToken() {
		calendarClient, err := calendar.NewClient(shutdownCtx)
		if err != nil {
			// Log but don't fail - will be re-attempted on first use.
			// slog goes to stderr; stdout may carry the MCP stdio transport.
			slog.Warn("failed to create Calendar client for default account", logging.Err(err))
		} else {
			calendarClients["default"] = calendarClient
		}
	}

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		calendarClients: calendarClients,
		shutdown:        false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// CalendarClientForAccount returns the Calendar client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no token
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.calendarClients[account]; ok {
		return client
	}

	// Try to create client if token exists
	if !calendar.HasTokenForAccount(account) {
		return nil
	}

	client, err := calendar.NewClientForAccount(sc.ctx, account)
	if err != nil {
		slog.Warn("failed to create Calendar client",
			slog.String("account", account), logging.Err(err))
		return nil
	}

	sc.calendarClients[account] = client
	return client
}

// CalendarClient returns the Calendar client for the default account
func (sc *ServerContext) CalendarClient() *calendar.Client {
	return sc.CalendarClientForAccount("default")
}

// SetCalendarClientForAccount sets the Calendar client for a specific account
func (sc *ServerContext) SetCalendarClientForAccount(account string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[account] = client
}

// SetCalendarClient sets the Calendar client for the default account
func (sc *ServerContext) SetCalendarClient(client *calendar.Client) {
	sc.SetCalendarClientForAccount("default", client)
}

// SetInstrumentation attaches metrics and audit logging to the server context.
// Both may be nil when instrumentation is disabled.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	sc.auditLogger = auditLogger
}

// Metrics returns the metrics recorder, or nil if instrumentation is disabled
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil if instrumentation is disabled
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
