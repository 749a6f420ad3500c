package lifecycle

import (
	"fmt"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// RevisionRecord is the slice of a document the revision resolver needs:
// its immutable reference code, its revision counter, the composite keys it
// references and when it was uploaded.
type RevisionRecord struct {
	ReferenceCode string
	Version       int64
	References    []string
	UploadedAt    time.Time
}

// Drawing is one entry of a heterogeneous drawing register.
type Drawing struct {
	Code string
	Rev  int64
}

// CompositeKey builds the "<code>_R<revision>" key that identifies one
// revision of a document across the document set.
func CompositeKey(referenceCode string, version int64) string {
	return fmt.Sprintf("%s_R%d", referenceCode, version)
}

// IsLatestRevision reports whether version equals the maximum version among
// the tracked snapshots. A document with no snapshots is trivially latest.
func IsLatestRevision(version int64, snapshots []int64) bool {
	for _, v := range snapshots {
		if v > version {
			return false
		}
	}
	return true
}

// IsLatestDrawing reports whether rev is the maximum revision among drawings
// sharing code. When no drawing carries the code the answer is undefined and
// ErrAmbiguousRevision is returned; callers decide the policy instead of
// inheriting a silent comparison against nothing.
func IsLatestDrawing(code string, rev int64, drawings []Drawing) (bool, error) {
	var maxRev int64
	found := false
	for _, d := range drawings {
		if d.Code != code {
			continue
		}
		if !found || d.Rev > maxRev {
			maxRev = d.Rev
		}
		found = true
	}

	if !found {
		return false, fmt.Errorf("%w: %s", ErrAmbiguousRevision, code)
	}

	return rev == maxRev, nil
}

// ReferencesFor returns the composite keys of every document whose
// references contain doc's own composite key.
func ReferencesFor(doc RevisionRecord, all []RevisionRecord) []string {
	key := CompositeKey(doc.ReferenceCode, doc.Version)

	refs := make([]string, 0)
	for _, d := range all {
		for _, ref := range d.References {
			if ref == key {
				refs = append(refs, CompositeKey(d.ReferenceCode, d.Version))
				break
			}
		}
	}

	return refs
}

// ReferenceDates collects the upload dates, formatted DD/MM/YYYY, of every
// document referencing any revision of doc. The result is deduplicated and
// unordered.
func ReferenceDates(doc RevisionRecord, all []RevisionRecord) mapset.Set[string] {
	dates := mapset.NewSet[string]()
	for _, d := range all {
		for _, ref := range d.References {
			if refersTo(ref, doc.ReferenceCode) {
				dates.Add(d.UploadedAt.Format("02/01/2006"))
				break
			}
		}
	}
	return dates
}

// refersTo matches a composite key against a bare reference code, ignoring
// the revision suffix.
func refersTo(composite, referenceCode string) bool {
	if composite == referenceCode {
		return true
	}
	prefix := referenceCode + "_R"
	return len(composite) > len(prefix) && composite[:len(prefix)] == prefix
}
