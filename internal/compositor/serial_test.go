package compositor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcist/pcist-backend/internal/types"
)

type stubCounter struct {
	next int64
	err  error
}

func (c *stubCounter) Next(_ context.Context, _ types.DocumentKind, _ int) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.next++
	return c.next, nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 7, 10, 0, 0, 0, time.UTC)
}

func TestSerialAllocatorFresh(t *testing.T) {
	a := NewSerialAllocator(&stubCounter{}, fixedNow)

	st, err := a.Allocate(context.Background(), types.DocumentKindStatement, Stamp{})
	require.NoError(t, err)
	assert.Equal(t, "pcIST-2025-0001", st.Serial)
	assert.Equal(t, "07 March 2025", st.DateStr)

	st, err = a.Allocate(context.Background(), types.DocumentKindStatement, Stamp{})
	require.NoError(t, err)
	assert.Equal(t, "pcIST-2025-0002", st.Serial)
}

func TestSerialAllocatorKindPrefix(t *testing.T) {
	a := NewSerialAllocator(&stubCounter{}, fixedNow)

	st, err := a.Allocate(context.Background(), types.DocumentKindInvoice, Stamp{})
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0001", st.Serial)
}

func TestSerialAllocatorReusesProvidedStamp(t *testing.T) {
	counter := &stubCounter{}
	a := NewSerialAllocator(counter, fixedNow)

	provided := Stamp{Serial: "pcIST-2024-0042", DateStr: "31 December 2024"}
	st, err := a.Allocate(context.Background(), types.DocumentKindStatement, provided)
	require.NoError(t, err)
	assert.Equal(t, provided, st)
	assert.Zero(t, counter.next, "counter must not advance on reuse")
}

func TestSerialAllocatorRejectsPartialStamp(t *testing.T) {
	a := NewSerialAllocator(&stubCounter{}, fixedNow)

	_, err := a.Allocate(context.Background(), types.DocumentKindStatement, Stamp{Serial: "pcIST-2024-0042"})
	assert.Error(t, err)

	_, err = a.Allocate(context.Background(), types.DocumentKindStatement, Stamp{DateStr: "31 December 2024"})
	assert.Error(t, err)
}

func TestFormatSerialPadding(t *testing.T) {
	assert.Equal(t, "pcIST-2025-0007", FormatSerial(types.DocumentKindStatement, 2025, 7))
	assert.Equal(t, "INV-2025-0123", FormatSerial(types.DocumentKindInvoice, 2025, 123))
	assert.Equal(t, "pcIST-2025-12345", FormatSerial(types.DocumentKindStatement, 2025, 12345))
}

func TestValidSerial(t *testing.T) {
	assert.True(t, ValidSerial("pcIST-2025-0007"))
	assert.True(t, ValidSerial("INV-2025-0123"))
	assert.False(t, ValidSerial("pcist-2025-0007"))
	assert.False(t, ValidSerial("pcIST-25-0007"))
	assert.False(t, ValidSerial("pcIST-2025-7"))
}
