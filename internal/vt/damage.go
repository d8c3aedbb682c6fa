package vt

import uv "github.com/charmbracelet/ultraviolet"

// Damage summarizes changes since the last Consume, at row granularity.
type Damage struct {
	Width  int
	Height int

	// Full indicates the entire screen should be treated as dirty.
	Full bool

	// ScrollDy is the net full-screen scroll delta since last Consume.
	// Negative means content moved up.
	ScrollDy int

	// DirtyRows contains 0-based row indices that changed, in the
	// coordinate space after applying ScrollDy.
	DirtyRows []int
}

// DamageTracker accumulates conservative damage for incremental renderers.
// It is not thread safe; callers serialize access.
type DamageTracker struct {
	width  int
	height int

	full     bool
	dirty    []bool
	scrollDy int
}

func NewDamageTracker(width, height int) *DamageTracker {
	d := &DamageTracker{}
	d.Resize(width, height)
	return d
}

func (d *DamageTracker) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	d.width = width
	d.height = height
	d.dirty = make([]bool, height)
	d.full = true
	d.scrollDy = 0
}

func (d *DamageTracker) MarkAll() {
	d.full = true
	d.scrollDy = 0
	for i := range d.dirty {
		d.dirty[i] = true
	}
}

func (d *DamageTracker) MarkRow(y int) {
	if d.full || y < 0 || y >= d.height {
		return
	}
	d.dirty[y] = true
}

func (d *DamageTracker) MarkRect(rect uv.Rectangle) {
	if d.full || d.height <= 0 {
		return
	}
	minY := max(rect.Min.Y, 0)
	maxY := min(rect.Max.Y, d.height)
	for y := minY; y < maxY; y++ {
		d.dirty[y] = true
	}
}

// MarkScroll records a full-screen vertical scroll, shifting pending
// dirty markers into the post-scroll coordinate space and marking the
// newly exposed rows dirty.
func (d *DamageTracker) MarkScroll(dy int) {
	if d.full {
		d.scrollDy = 0
		return
	}
	if d.height <= 0 || dy == 0 {
		return
	}
	if dy >= d.height || dy <= -d.height {
		d.MarkAll()
		return
	}

	d.scrollDy += dy
	if d.scrollDy >= d.height || d.scrollDy <= -d.height {
		d.MarkAll()
		return
	}

	shiftRows(d.dirty, dy)
	if dy > 0 {
		for y := 0; y < dy; y++ {
			d.dirty[y] = true
		}
	} else {
		for y := d.height + dy; y < d.height; y++ {
			d.dirty[y] = true
		}
	}
}

func shiftRows(rows []bool, dy int) {
	h := len(rows)
	if dy > 0 {
		for y := h - 1; y >= dy; y-- {
			rows[y] = rows[y-dy]
		}
		for y := 0; y < dy && y < h; y++ {
			rows[y] = false
		}
		return
	}
	dy = -dy
	for y := 0; y < h-dy; y++ {
		rows[y] = rows[y+dy]
	}
	for y := max(h-dy, 0); y < h; y++ {
		rows[y] = false
	}
}

// Consume returns the accumulated damage and resets the tracker.
func (d *DamageTracker) Consume() Damage {
	st := Damage{
		Width:    d.width,
		Height:   d.height,
		Full:     d.full,
		ScrollDy: d.scrollDy,
	}
	if !d.full && d.height > 0 {
		for y := 0; y < d.height; y++ {
			if d.dirty[y] {
				st.DirtyRows = append(st.DirtyRows, y)
			}
		}
	}

	d.full = false
	d.scrollDy = 0
	for i := range d.dirty {
		d.dirty[i] = false
	}
	return st
}
