package telegram

import "sync"

// sessionManager tracks access control and in-flight searches per user.
// A user gets one search at a time so a burst of messages cannot drain the
// OMDb quota.
type sessionManager struct {
	mu       sync.Mutex
	inFlight map[int64]bool
	allowed  map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		inFlight: make(map[int64]bool),
		allowed:  allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// begin marks a search as running for userID. It returns false if one is
// already running.
func (sm *sessionManager) begin(userID int64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.inFlight[userID] {
		return false
	}
	sm.inFlight[userID] = true
	return true
}

// end clears the running search for userID.
func (sm *sessionManager) end(userID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.inFlight, userID)
}
