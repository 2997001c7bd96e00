package reel

// ItemStyle is the presentation hint for one built entry at a given offset
type ItemStyle struct {
	Entry
	Centered bool
	Alpha    float64
	Scale    float64
}

// Highlight styles every built entry for the current offset
// All copies of the centered unique index are highlighted, since the
// visible window may fall into any of the three copies
func (s *Strip) Highlight(offset float64) []ItemStyle {
	if len(s.entries) == 0 || s.uniqueCount <= 0 {
		return nil
	}

	center := s.CenterIndex(offset)
	styles := make([]ItemStyle, len(s.entries))
	for i, e := range s.entries {
		st := ItemStyle{Entry: e, Alpha: s.layout.SideAlpha, Scale: s.layout.SideScale}
		if i%s.uniqueCount == center {
			st.Centered = true
			st.Alpha = 1
			st.Scale = s.layout.CenterScale
		}
		styles[i] = st
	}
	return styles
}
