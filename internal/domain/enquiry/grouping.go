// internal/domain/enquiry/grouping.go
package enquiry

import (
	"strings"
	"time"
)

// Group is a derived view over enquiries that were submitted together:
// members share a cart id, or an identical creation timestamp when the
// cart id is absent. Groups are a display concept and are never persisted.
type Group struct {
	Key           string    `json:"key"`
	CartID        string    `json:"cart_id,omitempty"`
	OverallStatus Status    `json:"overall_status"`
	Items         []Enquiry `json:"items"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsSingle reports whether the group holds exactly one enquiry and should
// be rendered as a flat row rather than an expandable one.
func (g *Group) IsSingle() bool {
	return len(g.Items) == 1
}

// GroupKey returns the grouping key for an enquiry: the cart id when
// present, otherwise the creation timestamp.
func GroupKey(e Enquiry) string {
	if e.CartID != "" {
		return e.CartID
	}
	return e.CreatedAt.UTC().Format(time.RFC3339Nano)
}

// GroupEnquiries partitions a flat enquiry list into groups, preserving
// the insertion order of first encounter.
func GroupEnquiries(enquiries []Enquiry) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0, len(enquiries))

	for _, e := range enquiries {
		key := GroupKey(e)
		if i, ok := index[key]; ok {
			groups[i].Items = append(groups[i].Items, e)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{
			Key:       key,
			CartID:    e.CartID,
			Items:     []Enquiry{e},
			CreatedAt: e.CreatedAt,
		})
	}

	for i := range groups {
		groups[i].OverallStatus = OverallStatus(groups[i].Items)
	}

	return groups
}

// OverallStatus derives a group's status: the common status when every
// member agrees, otherwise the "mixed" sentinel.
func OverallStatus(items []Enquiry) Status {
	if len(items) == 0 {
		return StatusPending
	}
	first := items[0].Status
	for _, e := range items[1:] {
		if e.Status != first {
			return StatusMixed
		}
	}
	return first
}

// MatchesFilter reports whether a single enquiry matches a search term
// (case-insensitive substring over product name and category) and an exact
// status filter. Empty filters match everything.
func MatchesFilter(e Enquiry, search string, status Status) bool {
	if status != "" && e.Status != status {
		return false
	}
	if search == "" {
		return true
	}
	term := strings.ToLower(search)
	if e.Product != nil {
		if strings.Contains(strings.ToLower(e.Product.Name), term) {
			return true
		}
		if strings.Contains(strings.ToLower(e.Product.Category), term) {
			return true
		}
	}
	return false
}

// FilterGroups keeps the groups where any member matches: a multi-item
// order surfaces under a filter if even one line item qualifies. A "mixed"
// status filter is matched against the group's derived status, since no
// single row ever carries it.
func FilterGroups(groups []Group, search string, status Status) []Group {
	if search == "" && status == "" {
		return groups
	}

	memberStatus := status
	if status == StatusMixed {
		memberStatus = ""
	}

	filtered := make([]Group, 0, len(groups))
	for _, g := range groups {
		if status == StatusMixed && g.OverallStatus != StatusMixed {
			continue
		}
		for _, e := range g.Items {
			if MatchesFilter(e, search, memberStatus) {
				filtered = append(filtered, g)
				break
			}
		}
	}
	return filtered
}
