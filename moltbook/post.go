package moltbook

// Post is a single feed item as returned by the Moltbook API. Posts are
// immutable once fetched; CreatedAt stays the raw API string so callers can
// order posts lexically.
type Post struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	URL       string   `json:"url,omitempty"`
	Submolt   *Submolt `json:"submolt,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// Submolt is the category/channel a post belongs to.
type Submolt struct {
	Name string `json:"name"`
}

// SubmoltName returns the category name, or "" when the post has none.
func (p Post) SubmoltName() string {
	if p.Submolt == nil {
		return ""
	}
	return p.Submolt.Name
}

const siteBaseURL = "https://www.moltbook.com"

// PostURL returns the site permalink for a post ID.
func PostURL(id string) string {
	if id == "" {
		return "(no id)"
	}
	return siteBaseURL + "/post/" + id
}

// Merge unions post lists in order, dropping later occurrences of an ID.
// Posts without an ID cannot collide and are kept as-is.
func Merge(lists ...[]Post) []Post {
	var merged []Post
	byID := make(map[string]bool)
	for _, list := range lists {
		for _, p := range list {
			if p.ID != "" {
				if byID[p.ID] {
					continue
				}
				byID[p.ID] = true
			}
			merged = append(merged, p)
		}
	}
	return merged
}
