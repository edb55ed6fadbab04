package diagnostics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tinygo-org/emheap/heap"
	"github.com/tinygo-org/emheap/heapopts"
	"github.com/tinygo-org/emheap/zone"
)

func newEngine(t *testing.T) (*heap.Engine, heap.HeapID) {
	t.Helper()
	e, err := heap.New(heapopts.Config{Alignment: 8, MaxHeaps: 1}, zone.NewMutexZone())
	require.NoError(t, err)
	id, err := e.Create(make([]byte, 512))
	require.NoError(t, err)
	return e, id
}

func TestCheckInvariantsCleanOnFreshHeap(t *testing.T) {
	e, id := newEngine(t)
	report := CheckInvariants(e, id)
	require.True(t, report.OK())
}

func TestCheckInvariantsCleanAfterAllocFreeChurn(t *testing.T) {
	e, id := newEngine(t)

	a := e.Alloc(id, 32)
	b := e.Alloc(id, 64)
	require.NotNil(t, a)
	require.NotNil(t, b)
	e.Free(a)
	c := e.Alloc(id, 16)
	require.NotNil(t, c)
	e.Free(b)
	e.Free(c)

	report := CheckInvariants(e, id)
	require.True(t, report.OK(), "report: %v", report)
}

func TestReportWriteToCleanBill(t *testing.T) {
	e, id := newEngine(t)
	var buf bytes.Buffer
	CheckInvariants(e, id).WriteTo(&buf)
	require.Equal(t, "no invariant violations found\n", buf.String())
}

func TestReportWriteToListsFindings(t *testing.T) {
	report := Report{
		{HeapID: 0, Msg: "b finding"},
		{HeapID: 0, Msg: "a finding"},
	}
	var buf bytes.Buffer
	report.WriteTo(&buf)
	require.Equal(t, "heap 0: b finding\nheap 0: a finding\n", buf.String())
	require.False(t, report.OK())
}
