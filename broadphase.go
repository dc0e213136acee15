package strata

import (
	"math"
	"sort"

	"github.com/strata2d/strata/body"
)

// DefaultBucketSize is the uniform grid's default cell width/height in
// world units (spec §4.3).
const DefaultBucketSize = 48.0

type cellKey struct {
	col, row int
}

type pairKey struct {
	lo, hi uint64
}

func makePairKey(a, b uint64) pairKey {
	if a <= b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// pairEntry is the broadphase's own candidate-pair bookkeeping record:
// [A, B, overlapCount] from spec §3's Grid definition. overlapCount is
// the number of grid cells the two bodies currently share; it only
// reaches pairsList once it is positive.
type pairEntry struct {
	a, b         *body.Body
	overlapCount int
}

// Grid is the uniform spatial-hash broadphase (spec §4.3): bodies are
// placed into the cells their bounds overlap, and any two bodies sharing
// a cell become (or remain) a candidate pair until they no longer share
// any cell.
type Grid struct {
	bucketWidth, bucketHeight float64

	buckets map[cellKey][]*body.Body
	pairs   map[pairKey]*pairEntry

	// pairsList is the current candidate-pair list, rebuilt whenever a
	// region changes this step.
	pairsList []*pairEntry
}

// NewGrid constructs a broadphase grid with the given cell dimensions.
func NewGrid(bucketWidth, bucketHeight float64) *Grid {
	if bucketWidth <= 0 {
		bucketWidth = DefaultBucketSize
	}
	if bucketHeight <= 0 {
		bucketHeight = DefaultBucketSize
	}
	return &Grid{
		bucketWidth:  bucketWidth,
		bucketHeight: bucketHeight,
		buckets:      make(map[cellKey][]*body.Body),
		pairs:        make(map[pairKey]*pairEntry),
	}
}

// Clear empties the grid entirely (used on World.isModified, spec §4.3).
func (g *Grid) Clear() {
	g.buckets = make(map[cellKey][]*body.Body)
	g.pairs = make(map[pairKey]*pairEntry)
	g.pairsList = nil
}

func (g *Grid) regionOf(b *body.Body) body.Region {
	return body.Region{
		ColMin: int(math.Floor(b.Bounds.Min.X() / g.bucketWidth)),
		ColMax: int(math.Floor(b.Bounds.Max.X() / g.bucketWidth)),
		RowMin: int(math.Floor(b.Bounds.Min.Y() / g.bucketHeight)),
		RowMax: int(math.Floor(b.Bounds.Max.Y() / g.bucketHeight)),
		Valid:  true,
	}
}

// Update places b according to its current bounds, rebuilding its
// occupied cells if its region changed (or force is set). worldBounds
// bodies outside it are skipped, per spec §4.3. Callers must pass
// force=true for every body in the same step as a Clear (world-modified
// rebuild), since b.Region may still equal the freshly-recomputed region
// even though the grid's own buckets were just emptied.
func (g *Grid) Update(b *body.Body, worldBounds body.Bounds, force bool) (changed bool) {
	if !b.IsStatic && b.IsSleeping && !force {
		return false
	}
	if !worldBounds.Overlaps(b.Bounds) {
		return false
	}

	next := g.regionOf(b)
	if !force && b.Region.Equal(next) {
		return false
	}
	prev := b.Region

	if prev.Valid {
		for col := prev.ColMin; col <= prev.ColMax; col++ {
			for row := prev.RowMin; row <= prev.RowMax; row++ {
				if !force && next.Valid && col >= next.ColMin && col <= next.ColMax && row >= next.RowMin && row <= next.RowMax {
					continue // shared cell: stays occupied, no remove/re-add needed
				}
				g.removeFromCell(cellKey{col, row}, b)
			}
		}
	}
	for col := next.ColMin; col <= next.ColMax; col++ {
		for row := next.RowMin; row <= next.RowMax; row++ {
			if prev.Valid && !force && col >= prev.ColMin && col <= prev.ColMax && row >= prev.RowMin && row <= prev.RowMax {
				continue
			}
			g.addToCell(cellKey{col, row}, b)
		}
	}

	b.Region = next
	return true
}

func (g *Grid) addToCell(key cellKey, b *body.Body) {
	bucket := g.buckets[key]
	for _, other := range bucket {
		if other == b {
			return
		}
		g.bumpPair(b, other, 1)
	}
	g.buckets[key] = append(bucket, b)
}

func (g *Grid) removeFromCell(key cellKey, b *body.Body) {
	bucket := g.buckets[key]
	idx := -1
	for i, other := range bucket {
		if other == b {
			idx = i
			continue
		}
		g.bumpPair(b, other, -1)
	}
	if idx >= 0 {
		bucket[idx] = bucket[len(bucket)-1]
		g.buckets[key] = bucket[:len(bucket)-1]
	}
}

func (g *Grid) bumpPair(a, b *body.Body, delta int) {
	if a.IsStatic && b.IsStatic {
		return
	}
	key := makePairKey(a.ID, b.ID)
	entry := g.pairs[key]
	if entry == nil {
		if delta <= 0 {
			return
		}
		entry = &pairEntry{a: a, b: b}
		g.pairs[key] = entry
	}
	entry.overlapCount += delta
}

// Rebuild regenerates pairsList from the pair table, dropping entries
// whose overlapCount has fallen to zero (spec §4.3). The list is sorted
// by (lower body id, higher body id) so its order does not depend on map
// traversal.
func (g *Grid) Rebuild() {
	list := make([]*pairEntry, 0, len(g.pairs))
	for _, e := range g.pairs {
		if e.overlapCount > 0 {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		ki, kj := makePairKey(list[i].a.ID, list[i].b.ID), makePairKey(list[j].a.ID, list[j].b.ID)
		if ki.lo != kj.lo {
			return ki.lo < kj.lo
		}
		return ki.hi < kj.hi
	})
	g.pairsList = list
}

// CandidatePairs returns the current broadphase candidate pairs as
// (bodyA, bodyB) tuples.
func (g *Grid) CandidatePairs() [][2]*body.Body {
	out := make([][2]*body.Body, 0, len(g.pairsList))
	for _, e := range g.pairsList {
		out = append(out, [2]*body.Body{e.a, e.b})
	}
	return out
}
