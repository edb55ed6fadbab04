package zone

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMutexZoneSerialisesAccess(t *testing.T) {
	z := NewMutexZone()
	z.Create()

	var counter int
	var wg sync.WaitGroup
	const goroutines = 50
	const increments = 200

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				z.Lock()
				counter++
				z.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*increments, counter)
}

func TestMutexZoneCreateIsIdempotent(t *testing.T) {
	z := NewMutexZone()
	require.NotPanics(t, func() {
		z.Create()
		z.Create()
	})
}

var _ Zone = (*MutexZone)(nil)
