package dnd

import (
	"math"
	"sort"
)

// noIndex marks "no excluded index" / "no placeholder".
const noIndex = -1

// HeightCache answers height, offset and index queries for one virtualized
// list. Items are keyed by stable identity so measurements survive
// reordering. At most one logical index can be excluded from flow (the
// currently dragged item in its origin list): the excluded item contributes
// zero height to totals and offsets, but HeightAt still reports its real
// height.
//
// Two implementations exist, selected once at container registration:
// fixed-height (pure arithmetic, O(1)) and measured (prefix sums + binary
// search, O(log n) lookups). See NewFixedHeightCache and NewHeightCache.
type HeightCache interface {
	// SetKeys replaces the logical order. Measurements for keys no longer
	// present are dropped. Returns whether order or membership changed.
	SetKeys(keys []ItemID) bool

	// SetHeight records a measured height for a key. Returns false when the
	// value is unchanged within tolerance, so callers can skip notifications.
	SetHeight(key ItemID, height float32) bool

	// SetExcluded marks a logical index as out-of-flow (zero height), or
	// clears the exclusion when passed a negative index.
	SetExcluded(index int) bool

	// Excluded returns the excluded index, or a negative value when none.
	Excluded() int

	// Len returns the current item count.
	Len() int

	// IndexOf returns the logical index of a key, or -1 if absent.
	IndexOf(key ItemID) int

	// HeightAt returns the height of the item at a logical index. Unmeasured
	// and out-of-range indexes report the estimated height; exclusion is
	// ignored here (the dragged item still has a real height).
	HeightAt(index int) float32

	// TotalHeight sums the heights of the first count items, with the
	// excluded index (if within range) contributing zero.
	TotalHeight(count int) float32

	// OffsetOf returns the cumulative height strictly before index, adjusted
	// for exclusion. Indexes beyond the item count clamp to the total.
	OffsetOf(index int) float32

	// IndexAt is the inverse of OffsetOf: the smallest index whose cumulative
	// bottom edge exceeds offset, honoring the exclusion adjustment.
	// Negative and -Inf offsets resolve to the first valid slot; +Inf and NaN
	// resolve to the item count (the end-of-list sentinel).
	IndexAt(offset float32) int

	// FirstVisible returns the first index visible at the given scroll
	// position, clamped to a renderable index.
	FirstVisible(scrollTop float32) int

	// VisibleCount returns how many rows starting at start are needed to
	// cover viewportHeight. A partially visible trailing row counts.
	VisibleCount(start int, viewportHeight float32) int
}

// indexAtEdges handles the offset values every implementation treats the
// same way. The boolean reports whether the result is already decided.
func indexAtEdges(offset float32, count, excluded int) (int, bool) {
	f := float64(offset)
	if math.IsNaN(f) || math.IsInf(f, 1) {
		return count, true
	}
	if offset <= 0 {
		// The exclusion removes index 0 as a landing target, so the
		// minimum slot is the next one.
		if excluded == 0 && count > 0 {
			return min(1, count), true
		}
		return 0, true
	}
	if count == 0 {
		return 0, true
	}
	return 0, false
}

// firstVisibleIndex clamps IndexAt to an index that can actually render.
func firstVisibleIndex(c HeightCache, scrollTop float32) int {
	n := c.Len()
	if n == 0 {
		return 0
	}
	idx := c.IndexAt(maxf(scrollTop, 0))
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// visibleRowCount fills viewportHeight with rows starting at start. The loop
// exits after the row that crosses the viewport edge, so a partially visible
// row is still counted. A non-positive viewport renders nothing.
func visibleRowCount(c HeightCache, start int, viewportHeight float32) int {
	n := c.Len()
	if viewportHeight <= 0 || start < 0 || start >= n {
		return 0
	}
	excluded := c.Excluded()
	count := 0
	y := float32(0)
	for i := start; i < n && y < viewportHeight; i++ {
		if i != excluded {
			y += c.HeightAt(i)
		}
		count++
	}
	return count
}

// -----------------------------------------------------------------------------
// Fixed-height mode
// -----------------------------------------------------------------------------

// fixedHeights short-circuits every query to row-height arithmetic. There is
// no cache structure at all: when every item is the same size, prefix sums
// buy nothing.
type fixedHeights struct {
	row      float32
	keys     []ItemID
	index    map[ItemID]int
	excluded int
}

// NewFixedHeightCache creates a height cache where every row is exactly
// rowHeight tall. All queries are O(1).
func NewFixedHeightCache(rowHeight float32) HeightCache {
	return &fixedHeights{
		row:      maxf(rowHeight, 1),
		excluded: noIndex,
	}
}

func (f *fixedHeights) SetKeys(keys []ItemID) bool {
	if sameKeys(f.keys, keys) {
		return false
	}
	f.keys = append(f.keys[:0], keys...)
	f.index = make(map[ItemID]int, len(keys))
	for i, k := range keys {
		f.index[k] = i
	}
	return true
}

// SetHeight is a no-op in fixed mode; rows do not vary.
func (f *fixedHeights) SetHeight(ItemID, float32) bool { return false }

func (f *fixedHeights) SetExcluded(index int) bool {
	if index < 0 {
		index = noIndex
	}
	if f.excluded == index {
		return false
	}
	f.excluded = index
	return true
}

func (f *fixedHeights) Excluded() int { return f.excluded }

func (f *fixedHeights) Len() int { return len(f.keys) }

func (f *fixedHeights) IndexOf(key ItemID) int {
	if i, ok := f.index[key]; ok {
		return i
	}
	return noIndex
}

func (f *fixedHeights) HeightAt(int) float32 { return f.row }

func (f *fixedHeights) TotalHeight(count int) float32 {
	if count <= 0 {
		return 0
	}
	total := float32(count) * f.row
	if f.excludedIn(count) {
		total -= f.row
	}
	return total
}

func (f *fixedHeights) OffsetOf(index int) float32 {
	if index <= 0 {
		return 0
	}
	n := len(f.keys)
	idx := index
	if idx > n {
		idx = n
	}
	off := float32(idx) * f.row
	if f.excludedIn(n) && index > f.excluded {
		off -= f.row
	}
	return off
}

func (f *fixedHeights) IndexAt(offset float32) int {
	n := len(f.keys)
	if idx, done := indexAtEdges(offset, n, f.excluded); done {
		return idx
	}
	if !f.excludedIn(n) {
		i := int(offset / f.row)
		if i > n {
			i = n
		}
		return i
	}
	// One row is out of flow: resolve in the collapsed list of n-1 rows,
	// then map back to original indexes skipping the excluded one.
	m := n - 1
	j := int(offset / f.row)
	if j >= m {
		return n
	}
	if j >= f.excluded {
		return j + 1
	}
	return j
}

func (f *fixedHeights) FirstVisible(scrollTop float32) int {
	return firstVisibleIndex(f, scrollTop)
}

func (f *fixedHeights) VisibleCount(start int, viewportHeight float32) int {
	return visibleRowCount(f, start, viewportHeight)
}

func (f *fixedHeights) excludedIn(count int) bool {
	return f.excluded >= 0 && f.excluded < count && f.excluded < len(f.keys)
}

// -----------------------------------------------------------------------------
// Measured (dynamic-height) mode
// -----------------------------------------------------------------------------

// measuredHeights tracks sparse measurements keyed by item identity and
// answers offset queries from a lazily rebuilt prefix-sum array.
//
// Invariants: len(prefix) == len(keys)+1, prefix[0] == 0, monotonically
// non-decreasing. Exclusion is applied arithmetically at query time, never
// baked into the prefix array, so toggling it does not force a rebuild.
type measuredHeights struct {
	estimated float32
	keys      []ItemID
	index     map[ItemID]int
	heights   map[ItemID]float32
	prefix    []float32
	dirty     bool
	excluded  int
}

// NewHeightCache creates a dynamic height cache. Rows report estimated until
// a measurement arrives via SetHeight. Offset and index queries are O(log n).
func NewHeightCache(estimated float32) HeightCache {
	return &measuredHeights{
		estimated: maxf(estimated, 1),
		heights:   make(map[ItemID]float32),
		excluded:  noIndex,
		dirty:     true,
	}
}

func (m *measuredHeights) SetKeys(keys []ItemID) bool {
	if sameKeys(m.keys, keys) {
		return false
	}
	m.keys = append(m.keys[:0], keys...)
	m.index = make(map[ItemID]int, len(keys))
	for i, k := range keys {
		m.index[k] = i
	}
	// Drop measurements for removed keys so the map cannot grow without
	// bound as items churn.
	for k := range m.heights {
		if _, ok := m.index[k]; !ok {
			delete(m.heights, k)
		}
	}
	m.dirty = true
	return true
}

func (m *measuredHeights) SetHeight(key ItemID, height float32) bool {
	current := m.estimated
	if h, ok := m.heights[key]; ok {
		current = h
	}
	if diff := height - current; diff < heightTolerance && diff > -heightTolerance {
		return false
	}
	m.heights[key] = height
	m.dirty = true
	return true
}

func (m *measuredHeights) SetExcluded(index int) bool {
	if index < 0 {
		index = noIndex
	}
	if m.excluded == index {
		return false
	}
	m.excluded = index
	return true
}

func (m *measuredHeights) Excluded() int { return m.excluded }

func (m *measuredHeights) Len() int { return len(m.keys) }

func (m *measuredHeights) IndexOf(key ItemID) int {
	if i, ok := m.index[key]; ok {
		return i
	}
	return noIndex
}

func (m *measuredHeights) HeightAt(index int) float32 {
	if index < 0 || index >= len(m.keys) {
		return m.estimated
	}
	return m.heightOf(m.keys[index])
}

func (m *measuredHeights) TotalHeight(count int) float32 {
	if count <= 0 {
		return 0
	}
	m.ensurePrefix()
	n := len(m.keys)
	var total float32
	if count <= n {
		total = m.prefix[count]
	} else {
		total = m.prefix[n] + float32(count-n)*m.estimated
	}
	if m.excluded >= 0 && m.excluded < n && m.excluded < count {
		total -= m.HeightAt(m.excluded)
	}
	return total
}

func (m *measuredHeights) OffsetOf(index int) float32 {
	if index <= 0 {
		return 0
	}
	m.ensurePrefix()
	n := len(m.keys)
	idx := index
	if idx > n {
		idx = n
	}
	off := m.prefix[idx]
	if m.excluded >= 0 && m.excluded < n && index > m.excluded {
		off -= m.HeightAt(m.excluded)
	}
	return off
}

func (m *measuredHeights) IndexAt(offset float32) int {
	n := len(m.keys)
	if idx, done := indexAtEdges(offset, n, m.excluded); done {
		return idx
	}
	m.ensurePrefix()
	if m.excluded < 0 || m.excluded >= n {
		i := sort.Search(n, func(i int) bool { return m.prefix[i+1] > offset })
		return i
	}
	// Search the collapsed list (excluded row removed), then map back to
	// original indexes. Collapsed bottoms stay monotone, so binary search
	// still applies.
	ex := m.excluded
	exH := m.HeightAt(ex)
	collapsed := n - 1
	bottom := func(j int) float32 {
		if j < ex {
			return m.prefix[j+1]
		}
		return m.prefix[j+2] - exH
	}
	j := sort.Search(collapsed, func(j int) bool { return bottom(j) > offset })
	if j >= collapsed {
		return n
	}
	if j >= ex {
		return j + 1
	}
	return j
}

func (m *measuredHeights) FirstVisible(scrollTop float32) int {
	return firstVisibleIndex(m, scrollTop)
}

func (m *measuredHeights) VisibleCount(start int, viewportHeight float32) int {
	return visibleRowCount(m, start, viewportHeight)
}

func (m *measuredHeights) heightOf(key ItemID) float32 {
	if h, ok := m.heights[key]; ok {
		return h
	}
	return m.estimated
}

// ensurePrefix rebuilds the prefix-sum array if heights or order changed
// since the last query.
func (m *measuredHeights) ensurePrefix() {
	if !m.dirty && m.prefix != nil {
		return
	}
	n := len(m.keys)
	if cap(m.prefix) < n+1 {
		m.prefix = make([]float32, n+1)
	}
	m.prefix = m.prefix[:n+1]
	m.prefix[0] = 0
	for i, k := range m.keys {
		m.prefix[i+1] = m.prefix[i] + m.heightOf(k)
	}
	m.dirty = false
}

// sameKeys reports identity+order equality of two key slices.
func sameKeys(a, b []ItemID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
