// Package common contains shared constants used across FeedHub components.
package common

// SessionCookieName is the name of the HTTP-only cookie that carries the
// session credential. The backend sets it on login and clears it on logout;
// the client never reads its value.
const SessionCookieName = "authToken"

// SessionCookieMaxAge is the cookie lifetime in seconds (7 days), matching
// the expiry the backend encodes into the credential itself.
const SessionCookieMaxAge = 604800
