package common

import (
	"context"
)

// GetAccountFromArgs extracts the account name from request arguments.
// The context parameter is accepted for handler-signature symmetry; account
// selection is purely argument driven.
//
// Priority order:
//  1. Explicit "account" argument in request
//  2. "default"
func GetAccountFromArgs(_ context.Context, args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}
