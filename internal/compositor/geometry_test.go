package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/pcist/pcist-backend/internal/errors"
)

// advancesCover checks that the bands cover totalH exactly: every band
// but the last advances by height minus overlap, the last by its full
// height.
func advancesCover(t *testing.T, bands []sliceBand, totalH, overlap float64) {
	t.Helper()
	require.NotEmpty(t, bands)

	covered := 0.0
	for i, b := range bands {
		assert.InDelta(t, covered, b.Start, 1e-9, "band %d start", i)
		if i == len(bands)-1 {
			assert.True(t, b.Final, "last band must be final")
			covered += b.Height
		} else {
			assert.False(t, b.Final)
			covered += b.Height - overlap
		}
	}
	assert.InDelta(t, totalH, covered, 1e-9)
}

func TestPlanSlicesSinglePage(t *testing.T) {
	bands, err := planSlices(300, 700, 34, 72, 0)
	require.NoError(t, err)
	require.Len(t, bands, 1)
	assert.Equal(t, sliceBand{Start: 0, Height: 300, Final: true}, bands[0])
}

func TestPlanSlicesCoversContent(t *testing.T) {
	for _, totalH := range []float64{701, 1000, 1366, 2800.5, 7000} {
		bands, err := planSlices(totalH, 700, 34, 72, 0)
		require.NoError(t, err, "totalH=%v", totalH)
		advancesCover(t, bands, totalH, 34)
		for i, b := range bands {
			assert.LessOrEqual(t, b.Height, 700.0, "band %d too tall", i)
			assert.Positive(t, b.Height)
		}
	}
}

func TestPlanSlicesDefersSliver(t *testing.T) {
	// 700 + (advance 666) leaves 710-666=44 < 72: the first band must
	// shrink so at least minViable lands on the second page.
	bands, err := planSlices(710, 700, 34, 72, 0)
	require.NoError(t, err)
	require.Len(t, bands, 2)
	assert.GreaterOrEqual(t, bands[1].Height, 72.0)
	advancesCover(t, bands, 710, 34)
}

func TestPlanSlicesReservesFinalBand(t *testing.T) {
	reserve := 96.0
	bands, err := planSlices(1390, 700, 34, 72, reserve)
	require.NoError(t, err)
	last := bands[len(bands)-1]
	assert.True(t, last.Final)
	assert.LessOrEqual(t, last.Height, 700.0-reserve)
	advancesCover(t, bands, 1390, 34)
}

func TestPlanSlicesNoProgress(t *testing.T) {
	_, err := planSlices(500, 30, 34, 72, 0)
	require.Error(t, err)
	assert.True(t, ierr.IsPagination(err))

	_, err = planSlices(0, 700, 34, 72, 0)
	require.Error(t, err)
	assert.True(t, ierr.IsPagination(err))
}

func TestPlanWithLeadCoversContent(t *testing.T) {
	leadH, bandH, overlap := 560.0, 700.0, 34.0
	for _, totalH := range []float64{100, 560, 561, 1500, 4000} {
		bands, err := planWithLead(totalH, leadH, bandH, overlap, 72, 0)
		require.NoError(t, err, "totalH=%v", totalH)
		advancesCover(t, bands, totalH, overlap)
		assert.LessOrEqual(t, bands[0].Height, leadH)
		for _, b := range bands[1:] {
			assert.LessOrEqual(t, b.Height, bandH)
		}
	}
}

func TestSignatureSlots(t *testing.T) {
	assert.Empty(t, signatureSlots(0))
	assert.Equal(t, []SignatureAlign{SignRight}, signatureSlots(1))
	assert.Equal(t, []SignatureAlign{SignLeft, SignRight}, signatureSlots(2))
	assert.Equal(t, []SignatureAlign{SignLeft, SignCenter, SignRight}, signatureSlots(3))
}

func TestSlotXOrdering(t *testing.T) {
	w := sigLineWidth
	assert.Less(t, slotX(SignLeft, w), slotX(SignCenter, w))
	assert.Less(t, slotX(SignCenter, w), slotX(SignRight, w))
	assert.InDelta(t, marginSide, slotX(SignLeft, w), 1e-9)
	assert.InDelta(t, pageWidth-marginSide-w, slotX(SignRight, w), 1e-9)
}
