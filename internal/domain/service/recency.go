package service

// DefaultRecencyCapacity bounds a viewing history.
const DefaultRecencyCapacity = 10

// RecencyCache is a most-recently-used list of listing ids.
type RecencyCache struct {
	Capacity int
}

func NewRecencyCache(capacity int) RecencyCache {
	if capacity <= 0 {
		capacity = DefaultRecencyCapacity
	}
	return RecencyCache{Capacity: capacity}
}

// Touch returns ids with listingID moved (or added) to the front, without
// duplicates and cut to capacity. ids is not modified.
func (c RecencyCache) Touch(ids []string, listingID string) []string {
	out := make([]string, 0, c.Capacity)
	out = append(out, listingID)
	for _, id := range ids {
		if len(out) == c.Capacity {
			break
		}
		if id != listingID {
			out = append(out, id)
		}
	}
	return out
}

func TouchRecency(ids []string, listingID string) []string {
	return NewRecencyCache(DefaultRecencyCapacity).Touch(ids, listingID)
}

// ToggleFavorite removes listingID from ids when present and appends it
// otherwise. It reports whether listingID is a favorite afterwards.
func ToggleFavorite(ids []string, listingID string) ([]string, bool) {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, id := range ids {
		if id == listingID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if found {
		return out, false
	}
	return append(out, listingID), true
}
