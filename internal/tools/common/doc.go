// Package common holds the helpers shared by the tool packages: account
// extraction from tool arguments and the instrumentation wrappers that
// record metrics and audit entries around tool handlers.
package common
