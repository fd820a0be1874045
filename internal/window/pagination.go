package window

// Page describes where one fetched page sits within the full result set.
type Page struct {
	Total         int  `json:"total"`
	ReturnedCount int  `json:"returned_count"`
	Offset        int  `json:"offset"`
	Limit         int  `json:"limit"`
	NextOffset    *int `json:"next_offset"`
	HasMore       bool `json:"has_more"`
}

// Paginate derives has_more and next_offset from the upstream total. The
// returned count may be short of limit near the end of the result set.
func Paginate(total, offset, returned, limit int) Page {
	if offset < 0 {
		offset = 0
	}
	p := Page{
		Total:         total,
		ReturnedCount: returned,
		Offset:        offset,
		Limit:         limit,
		HasMore:       offset+returned < total,
	}
	if p.HasMore {
		next := offset + returned
		p.NextOffset = &next
	}
	return p
}
