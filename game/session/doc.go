// Package session provides session management for the Artifact Hunt game.
//
// The session package implements:
//   - Thread-safe in-memory session storage and retrieval
//   - Unique session ID generation
//   - Session cleanup and expiration
//
// Manager is the session store. Each service.Session owns its own engine,
// built from a sensor profile and a seed, plus creation and last access
// times. Nothing is written to disk; a restart starts from an empty store.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs drawn from crypto/rand. Lookups are
// case-insensitive and generation retries on collision.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", profile, 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//	sessions := manager.List()
//
//	// Drop sessions idle for more than an hour
//	removed := manager.CleanupExpiredSessions(time.Hour)
package session
