package reel

import "errors"

// Copies is the number of times the unique value set is repeated to form the visual loop
const Copies = 3

// ErrEmptyValues is returned when a strip is built from an empty value set
var ErrEmptyValues = errors.New("reel: empty value set")

// Entry is a single built item of the strip
type Entry struct {
	Value int
	Index int     // Position in the built (3N) strip
	Y     float64 // Content-space position, -Index*ItemSpacing
}

// Layout holds the static strip geometry and highlight tuning
type Layout struct {
	ItemSpacing float64 `yaml:"item_spacing"`
	IdleIndex   int     `yaml:"idle_index"` // Unique index centered when idle

	SideAlpha   float64 `yaml:"side_alpha"`
	CenterScale float64 `yaml:"center_scale"`
	SideScale   float64 `yaml:"side_scale"`
}

// DefaultLayout returns the stock reel layout
func DefaultLayout() Layout {
	return Layout{
		ItemSpacing: 120,
		IdleIndex:   1,
		SideAlpha:   0.45,
		CenterScale: 1.12,
		SideScale:   0.95,
	}
}

// Strip owns the looping prize strip
// Values are expected to be pairwise distinct; with duplicates the first
// match wins on lookup and every copy of the centered index highlights
// Not safe for concurrent use, owned by a single writer
type Strip struct {
	layout      Layout
	entries     []Entry
	uniqueCount int
	generation  uint64
}

// NewStrip creates an unbuilt strip
func NewStrip(layout Layout) *Strip {
	return &Strip{layout: layout}
}

// Build replaces the strip with Copies concatenated copies of values
// Previous entries are released and the generation counter advances
func (s *Strip) Build(values []int) error {
	if len(values) == 0 {
		return ErrEmptyValues
	}

	s.clear()

	s.uniqueCount = len(values)
	s.entries = make([]Entry, 0, len(values)*Copies)
	for c := 0; c < Copies; c++ {
		for _, v := range values {
			i := len(s.entries)
			s.entries = append(s.entries, Entry{
				Value: v,
				Index: i,
				Y:     -float64(i) * s.layout.ItemSpacing,
			})
		}
	}
	s.generation++
	return nil
}

func (s *Strip) clear() {
	// Drop references so the old backing array can be collected
	s.entries = nil
	s.uniqueCount = 0
}

// Built reports whether the strip holds a usable loop
func (s *Strip) Built() bool {
	return s.uniqueCount > 0 && s.LoopHeight() > Epsilon
}

// Generation increments on every successful Build
func (s *Strip) Generation() uint64 {
	return s.generation
}

// Layout returns the strip layout
func (s *Strip) Layout() Layout {
	return s.layout
}

// ItemSpacing returns the distance between consecutive entries
func (s *Strip) ItemSpacing() float64 {
	return s.layout.ItemSpacing
}

// UniqueCount returns N, the size of the unique value segment
func (s *Strip) UniqueCount() int {
	return s.uniqueCount
}

// LoopHeight returns the scroll distance of one full cycle, 0 if unbuilt
func (s *Strip) LoopHeight() float64 {
	return float64(s.uniqueCount) * s.layout.ItemSpacing
}

// IdleOffset returns the idle index position reduced into the loop
func (s *Strip) IdleOffset() float64 {
	if s.uniqueCount <= 0 {
		return 0
	}
	return Mod(float64(s.layout.IdleIndex)*s.layout.ItemSpacing, s.LoopHeight())
}

// IndexOf returns the first index of value in the unique segment, -1 if absent
func (s *Strip) IndexOf(value int) int {
	for i := 0; i < s.uniqueCount; i++ {
		if s.entries[i].Value == value {
			return i
		}
	}
	return -1
}

// TargetOffsetFor returns the loop offset that centers value
// Unknown values fall back to offset 0 with found=false
func (s *Strip) TargetOffsetFor(value int) (offset float64, found bool) {
	i := s.IndexOf(value)
	if i < 0 {
		return 0, false
	}
	return Mod(float64(i)*s.layout.ItemSpacing, s.LoopHeight()), true
}

// CenterIndex returns the unique index centered at offset
func (s *Strip) CenterIndex(offset float64) int {
	return CenterIndex(offset, s.layout.ItemSpacing, s.uniqueCount)
}

// ValueAt returns the unique value at index i, wrapping with floor-mod
func (s *Strip) ValueAt(i int) int {
	if s.uniqueCount <= 0 {
		return 0
	}
	i %= s.uniqueCount
	if i < 0 {
		i += s.uniqueCount
	}
	return s.entries[i].Value
}

// Values returns a copy of the unique value segment
func (s *Strip) Values() []int {
	out := make([]int, s.uniqueCount)
	for i := range out {
		out[i] = s.entries[i].Value
	}
	return out
}

// Entries returns the built entries; callers must not modify the slice
func (s *Strip) Entries() []Entry {
	return s.entries
}
