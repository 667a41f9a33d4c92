// Package server provides the MCP server context and operational HTTP
// endpoints for the calassist application.
//
// ServerContext manages Calendar API clients with lazy initialization and
// caching, keyed by account name.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the MCP stdio transport. HealthChecker exposes liveness and readiness
// probes on the same mux.
package server
