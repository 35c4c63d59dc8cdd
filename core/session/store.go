package session

// Store persists the session across invocations. It is the only component
// allowed to touch durable state; the credential submitter, the guard and the
// profile fetcher all go through it.
//
// Field ownership: Write and Clear own token/role/userId; WriteProfile owns
// the cached profile snapshot. No two writers share a field, so writes are
// whole-field replacements and never merge.
type Store interface {
	// Write persists token, role, userId and, when set, the profile snapshot.
	// Implementations must persist the token last so that an interrupted write
	// reads back as an unauthenticated session.
	Write(Session) error

	// Read reconstructs the session from whatever fields are present. A
	// missing token means "no session" regardless of other fields; Read does
	// not enforce that, callers do (see Guard).
	Read() (Session, error)

	// WriteProfile refreshes only the cached profile snapshot. It must never
	// touch token, role or userId.
	WriteProfile(Profile) error

	// Clear removes every session field. Clearing an already empty store is
	// not an error.
	Clear() error
}
