// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, navigation contract, focus events, message contracts, key registry
// - shell chrome shared by every screen (header, status bar, footer)
//
// Not allowed here:
// - concrete screen rendering implementations
// - talking to task sources
package core
