package sqlite

import "context"

// Identity is the local stand-in for the hosted identity provider.
// Deleting the "identity" of a local session removes every row the
// user owns; there is no session to go stale, so this never fails
// with a re-auth condition.
type Identity struct {
	store  *Store
	userID string
}

// NewIdentity returns an Identity bound to a local store and user.
func NewIdentity(store *Store, userID string) *Identity {
	return &Identity{store: store, userID: userID}
}

// DeleteCurrentIdentity removes all remaining data for the user.
func (i *Identity) DeleteCurrentIdentity(ctx context.Context) error {
	_, err := i.store.db.ExecContext(ctx,
		`DELETE FROM notes WHERE user_id = ?`, i.userID)
	return err
}
