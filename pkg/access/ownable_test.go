package access

import (
	"testing"

	"tokenbank/core"

	"github.com/stretchr/testify/assert"
)

func TestOwnable(t *testing.T) {
	o := Ownable{Owner: "alice"}

	assert.NoError(t, o.Check("alice"))
	assert.ErrorIs(t, o.Check("bob"), core.ErrAccess)
	assert.ErrorIs(t, o.Check(""), core.ErrAccess)

	assert.ErrorIs(t, o.Transfer("bob", "bob"), core.ErrAccess)
	assert.ErrorIs(t, o.Transfer("alice", ""), core.ErrConfiguration)

	assert.NoError(t, o.Transfer("alice", "bob"))
	assert.Equal(t, "bob", o.Owner)
	assert.ErrorIs(t, o.Check("alice"), core.ErrAccess)
}
