package logic

// Cursor tracks the selected entry of a list and the window of rows that
// is on screen. The window reserves a row for each scroll indicator.
type Cursor struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewCursor creates a cursor for a window of the given height
func NewCursor(viewportHeight int) *Cursor {
	c := &Cursor{}
	c.SetViewportHeight(viewportHeight)
	return c
}

// Selected returns the selected index
func (c *Cursor) Selected() int {
	return c.selectedIndex
}

// Offset returns the index of the first visible entry
func (c *Cursor) Offset() int {
	return c.viewportOffset
}

// ViewportHeight returns the number of rows available to the list
func (c *Cursor) ViewportHeight() int {
	return c.viewportHeight
}

// Reset points the cursor at the first entry of a list of total entries
func (c *Cursor) Reset(total int) {
	c.totalItems = total
	c.selectedIndex = 0
	c.viewportOffset = 0
}

// Restore selects index in a list of total entries, clamped to the list
func (c *Cursor) Restore(total, index int) {
	c.totalItems = total
	c.viewportOffset = 0
	c.SetSelectedIndex(index)
}

// SetViewportHeight resizes the window
func (c *Cursor) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	c.viewportHeight = height
	c.ensureSelectedVisible()
}

// SetSelectedIndex selects index and scrolls it into view
func (c *Cursor) SetSelectedIndex(index int) {
	if index > c.totalItems-1 {
		index = c.totalItems - 1
	}
	if index < 0 {
		index = 0
	}
	c.selectedIndex = index
	c.ensureSelectedVisible()
}

// Move shifts the selection by delta entries
func (c *Cursor) Move(delta int) {
	c.SetSelectedIndex(c.selectedIndex + delta)
}

// PageUp moves the selection up by one page
func (c *Cursor) PageUp() {
	c.Move(-c.pageSize())
}

// PageDown moves the selection down by one page
func (c *Cursor) PageDown() {
	c.Move(c.pageSize())
}

// Top selects the first entry
func (c *Cursor) Top() {
	c.SetSelectedIndex(0)
}

// Bottom selects the last entry
func (c *Cursor) Bottom() {
	c.SetSelectedIndex(c.totalItems - 1)
}

func (c *Cursor) pageSize() int {
	size := c.viewportHeight - 2 // Leave some overlap
	if size < 1 {
		size = 1
	}
	return size
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (c *Cursor) ensureSelectedVisible() {
	if c.selectedIndex < c.viewportOffset {
		c.viewportOffset = c.selectedIndex
	}

	effectiveHeight := c.EffectiveHeight()

	if c.selectedIndex >= c.viewportOffset+effectiveHeight {
		c.viewportOffset = c.selectedIndex - effectiveHeight + 1
		// Indicators may change once we scroll, recompute against the new offset
		effectiveHeight = c.EffectiveHeight()
		if c.selectedIndex >= c.viewportOffset+effectiveHeight {
			c.viewportOffset = c.selectedIndex - effectiveHeight + 1
		}
	}

	maxOffset := c.totalItems - c.EffectiveHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	if c.viewportOffset > maxOffset {
		c.viewportOffset = maxOffset
	}
	if c.viewportOffset < 0 {
		c.viewportOffset = 0
	}
}

// NeedsTopIndicator reports whether entries are hidden above the window
func (c *Cursor) NeedsTopIndicator() bool {
	return c.viewportOffset > 0
}

// NeedsBottomIndicator reports whether entries are hidden below the window
func (c *Cursor) NeedsBottomIndicator() bool {
	available := c.viewportHeight
	if c.NeedsTopIndicator() {
		available--
	}
	return c.totalItems-c.viewportOffset > available
}

// EffectiveHeight is the number of entries shown once indicators are placed
func (c *Cursor) EffectiveHeight() int {
	height := c.viewportHeight
	if c.NeedsTopIndicator() {
		height--
	}
	if c.NeedsBottomIndicator() {
		height--
	}
	if height < 1 {
		height = 1
	}
	return height
}

// Window returns the half-open range of visible entries and the number of
// entries hidden above and below it
func (c *Cursor) Window() (start, end, above, below int) {
	start = c.viewportOffset
	end = start + c.EffectiveHeight()
	if end > c.totalItems {
		end = c.totalItems
	}
	return start, end, start, c.totalItems - end
}
