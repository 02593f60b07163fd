package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournal(t *testing.T) {
	var (
		j Journal
		v = 1
	)

	set := func(n int) {
		prev := v
		j.Append(func() { v = prev })
		v = n
	}

	// nothing is recorded without a snapshot
	set(2)
	assert.Len(t, j.entries, 0)

	outer := j.Snapshot()
	set(3)
	inner := j.Snapshot()
	set(4)
	set(5)

	j.RevertToSnapshot(inner)
	assert.Equal(t, 3, v)

	set(6)
	j.RevertToSnapshot(outer)
	assert.Equal(t, 2, v)
	assert.Len(t, j.entries, 0)

	id := j.Snapshot()
	set(7)
	j.Release(id)
	assert.Equal(t, 7, v)
	assert.Len(t, j.entries, 0)
}
