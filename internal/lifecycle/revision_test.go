package lifecycle

import (
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestCompositeKey(t *testing.T) {
	assert.Equal(t, "DWG-100_R3", CompositeKey("DWG-100", 3))
}

func TestIsLatestRevision(t *testing.T) {
	tests := []struct {
		name      string
		version   int64
		snapshots []int64
		want      bool
	}{
		{"latest among snapshots", 3, []int64{1, 2, 3}, true},
		{"superseded", 2, []int64{1, 2, 3}, false},
		{"no snapshots is trivially latest", 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLatestRevision(tt.version, tt.snapshots))
		})
	}
}

func TestIsLatestDrawing(t *testing.T) {
	drawings := []Drawing{
		{Code: "DWG-100", Rev: 1},
		{Code: "DWG-100", Rev: 2},
		{Code: "DWG-200", Rev: 1},
	}

	latest, err := IsLatestDrawing("DWG-100", 2, drawings)
	assert.NoError(t, err)
	assert.True(t, latest)

	latest, err = IsLatestDrawing("DWG-100", 1, drawings)
	assert.NoError(t, err)
	assert.False(t, latest)
}

func TestIsLatestDrawing_UnknownCode(t *testing.T) {
	_, err := IsLatestDrawing("DWG-999", 1, []Drawing{{Code: "DWG-100", Rev: 1}})
	assert.ErrorIs(t, err, ErrAmbiguousRevision)
}

func TestReferencesFor(t *testing.T) {
	doc := RevisionRecord{ReferenceCode: "DWG-100", Version: 2}
	all := []RevisionRecord{
		{ReferenceCode: "DWG-200", Version: 1, References: []string{"DWG-100_R2"}},
		{ReferenceCode: "DWG-300", Version: 4, References: []string{"DWG-100_R1"}},
		{ReferenceCode: "DWG-400", Version: 1, References: []string{"DWG-500_R1", "DWG-100_R2"}},
	}

	refs := ReferencesFor(doc, all)
	assert.ElementsMatch(t, []string{"DWG-200_R1", "DWG-400_R1"}, refs)
}

func TestReferenceDates(t *testing.T) {
	doc := RevisionRecord{ReferenceCode: "DWG-100", Version: 2}
	all := []RevisionRecord{
		// references an older revision, still counts
		{ReferenceCode: "DWG-200", Version: 1, References: []string{"DWG-100_R1"}, UploadedAt: date(2024, time.March, 5)},
		{ReferenceCode: "DWG-300", Version: 1, References: []string{"DWG-100_R2"}, UploadedAt: date(2024, time.March, 5)},
		{ReferenceCode: "DWG-400", Version: 1, References: []string{"DWG-100_R2"}, UploadedAt: date(2024, time.April, 1)},
		// prefix collision, DWG-1000 is not DWG-100
		{ReferenceCode: "DWG-500", Version: 1, References: []string{"DWG-1000_R1"}, UploadedAt: date(2024, time.May, 1)},
	}

	dates := ReferenceDates(doc, all)
	assert.True(t, dates.Equal(mapset.NewSet("05/03/2024", "01/04/2024")))
}
