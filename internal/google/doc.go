// Package google provides OAuth2 authentication for the Google Calendar API.
//
// Tokens are cached per account under the user cache directory
// (~/.cache/calassist/google-<account>.token on Linux). Client credentials
// come from the GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET
// environment variables so they never land in source control.
//
// The TokenProvider interface abstracts token retrieval so API clients can
// be constructed against the file-based cache or a test double.
package google
