package core

// Journal collaborator state that can be rolled back with the bank operation
// that touched it
type Journal interface {
	Snapshot() int
	RevertToSnapshot(id int)
	// Release drops the snapshot once the operation committed
	Release(id int)
}
