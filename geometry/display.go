package geometry

// ItemStride is the space one row occupies: its height plus padding above
// and below.
func ItemStride(itemHeight, itemPadding int) int {
	return maxInt(itemHeight, 0) + 2*maxInt(itemPadding, 0)
}

// ContentBodyHeight is the height left for rows once the header and the
// container border are taken out.
func ContentBodyHeight(height, headerHeight, borderWidth int) int {
	return maxInt(height-headerHeight-2*borderWidth, 0)
}

// DisplayCount returns ceil(bodyHeight / stride): the number of rows that must
// be materialized to cover the body, independent of the data length.
func DisplayCount(bodyHeight, itemHeight, itemPadding int) int {
	stride := ItemStride(itemHeight, itemPadding)
	if bodyHeight <= 0 || stride <= 0 {
		return 0
	}
	return (bodyHeight + stride - 1) / stride
}

// FirstVisibleRow maps a vertical scroll offset to the topmost row index.
func FirstVisibleRow(scrollTop, itemHeight, itemPadding int) int {
	stride := ItemStride(itemHeight, itemPadding)
	if stride <= 0 || scrollTop <= 0 {
		return 0
	}
	return scrollTop / stride
}

// VisibleRange returns the half-open window [start, end) of rows to render.
func VisibleRange(scrollTop, itemHeight, itemPadding, displayCount, total int) (start, end int) {
	if total <= 0 || displayCount <= 0 {
		return 0, 0
	}
	start = clampInt(FirstVisibleRow(scrollTop, itemHeight, itemPadding), 0, total-1)
	end = minInt(start+displayCount, total)
	return start, end
}

// ScrollTopForRow returns the scroll offset that puts row at the top.
func ScrollTopForRow(row, itemHeight, itemPadding int) int {
	return maxInt(row, 0) * ItemStride(itemHeight, itemPadding)
}

// MaxScrollTop is the largest offset that still fills the body with rows.
func MaxScrollTop(total, bodyHeight, itemHeight, itemPadding int) int {
	return maxInt(total*ItemStride(itemHeight, itemPadding)-maxInt(bodyHeight, 0), 0)
}

// MaxScrollLeft is the largest horizontal offset of the scrollable region.
func MaxScrollLeft(contentWidth, viewWidth int) int {
	return maxInt(contentWidth-maxInt(viewWidth, 0), 0)
}
