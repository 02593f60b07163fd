package journal

// Journal undo log, entries are only kept while a snapshot is open.
// It is not safe for concurrent use, owners guard it with their own lock.
type Journal struct {
	entries []func()
	open    int
}

// Append records how to undo the change that is about to happen
func (j *Journal) Append(undo func()) {
	if j.open > 0 {
		j.entries = append(j.entries, undo)
	}
}

func (j *Journal) Snapshot() int {
	j.open++
	return len(j.entries)
}

func (j *Journal) RevertToSnapshot(id int) {
	if id > len(j.entries) {
		id = len(j.entries)
	}

	for i := len(j.entries) - 1; i >= id; i-- {
		j.entries[i]()
	}

	j.entries = j.entries[:id]
	j.release()
}

func (j *Journal) Release(id int) {
	j.release()
}

func (j *Journal) release() {
	if j.open > 0 {
		j.open--
	}

	if j.open == 0 {
		j.entries = nil
	}
}
