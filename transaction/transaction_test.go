package transaction_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netrack/ofcore/transaction"
)

func TestNextSyncXIDTracksPending(t *testing.T) {
	reg := transaction.NewRegistry()

	xid := reg.NextSyncXID()
	assert.True(t, reg.Pending(xid))
	assert.Equal(t, 1, reg.Len())

	reg.ReleaseSyncXID(xid)
	assert.False(t, reg.Pending(xid))
	assert.Equal(t, 0, reg.Len())
}

func TestReleaseUnknownXIDIsNoop(t *testing.T) {
	reg := transaction.NewRegistry()
	reg.ReleaseSyncXID(12345)
	assert.Equal(t, 0, reg.Len())
}

func TestNextAsyncXIDNotTracked(t *testing.T) {
	reg := transaction.NewRegistry()

	xid := reg.NextAsyncXID()
	assert.False(t, reg.Pending(xid))
	assert.Equal(t, 0, reg.Len())
}

func TestNextSyncXIDConcurrentUnique(t *testing.T) {
	reg := transaction.NewRegistry()

	const n = 200
	var wg sync.WaitGroup
	xids := make(chan uint32, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			xids <- uint32(reg.NextSyncXID())
		}()
	}

	wg.Wait()
	close(xids)

	seen := make(map[uint32]bool, n)
	for xid := range xids {
		assert.False(t, seen[xid], "duplicate xid %d", xid)
		seen[xid] = true
	}
	assert.Equal(t, n, reg.Len())
}
