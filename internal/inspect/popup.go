package inspect

// Popup is the visibility and scroll state of the file list overlay.
type Popup struct {
	visible bool
	offset  int
}

func (p *Popup) Visible() bool { return p.visible }

func (p *Popup) Offset() int { return p.offset }

// Toggle shows or hides the popup; hiding resets the scroll position.
func (p *Popup) Toggle() {
	p.visible = !p.visible
	if !p.visible {
		p.offset = 0
	}
}

// Hide closes the popup and resets the scroll position.
func (p *Popup) Hide() {
	p.visible = false
	p.offset = 0
}

// ScrollUp moves one row up, stopping at the top.
func (p *Popup) ScrollUp() {
	if p.offset > 0 {
		p.offset--
	}
}

// ScrollDown moves one row down unless the last row is already in view.
func (p *Popup) ScrollDown(total, view int) {
	if p.offset+view < total {
		p.offset++
	}
}

// Clamp pulls the offset back after the listing shrank.
func (p *Popup) Clamp(total, view int) {
	maxOffset := total - view
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
}

// Window returns the half-open range of rows visible at the current offset,
// without changing the stored offset.
func (p *Popup) Window(total, view int) (start, end int) {
	start = p.offset
	if maxOffset := total - view; start > maxOffset {
		start = maxOffset
	}
	if start < 0 {
		start = 0
	}
	end = start + view
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end
}
