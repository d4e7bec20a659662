// internal/domain/enquiry/grouping_test.go
package enquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divyanshus020/Project-VMC-sub000/internal/domain/product"
)

func TestGroupKey(t *testing.T) {
	created := time.Date(2025, 3, 14, 10, 30, 0, 123456789, time.UTC)

	t.Run("uses cart id when present", func(t *testing.T) {
		e := Enquiry{CartID: "batch-abc", CreatedAt: created}
		assert.Equal(t, "batch-abc", GroupKey(e))
	})

	t.Run("falls back to creation timestamp", func(t *testing.T) {
		e := Enquiry{CreatedAt: created}
		assert.Equal(t, created.Format(time.RFC3339Nano), GroupKey(e))
	})

	t.Run("same timestamp yields same fallback key", func(t *testing.T) {
		a := Enquiry{ID: 1, CreatedAt: created}
		b := Enquiry{ID: 2, CreatedAt: created}
		assert.Equal(t, GroupKey(a), GroupKey(b))
	})
}

func TestGroupEnquiries(t *testing.T) {
	now := time.Now().UTC()

	t.Run("members sharing a cart id form one group", func(t *testing.T) {
		enquiries := []Enquiry{
			{ID: 1, CartID: "c1", Status: StatusPending, CreatedAt: now},
			{ID: 2, CartID: "c1", Status: StatusPending, CreatedAt: now},
			{ID: 3, CartID: "c2", Status: StatusPending, CreatedAt: now.Add(time.Minute)},
		}

		groups := GroupEnquiries(enquiries)
		require.Len(t, groups, 2)
		assert.Len(t, groups[0].Items, 2)
		assert.Len(t, groups[1].Items, 1)
		assert.True(t, groups[1].IsSingle())
		assert.False(t, groups[0].IsSingle())
	})

	t.Run("preserves insertion order of first encounter", func(t *testing.T) {
		enquiries := []Enquiry{
			{ID: 1, CartID: "newest", CreatedAt: now},
			{ID: 2, CartID: "older", CreatedAt: now.Add(-time.Hour)},
			{ID: 3, CartID: "newest", CreatedAt: now},
			{ID: 4, CartID: "oldest", CreatedAt: now.Add(-2 * time.Hour)},
		}

		groups := GroupEnquiries(enquiries)
		require.Len(t, groups, 3)
		assert.Equal(t, "newest", groups[0].Key)
		assert.Equal(t, "older", groups[1].Key)
		assert.Equal(t, "oldest", groups[2].Key)
	})

	t.Run("distinct batches without cart ids stay separate", func(t *testing.T) {
		enquiries := []Enquiry{
			{ID: 1, CreatedAt: now},
			{ID: 2, CreatedAt: now.Add(time.Second)},
		}

		groups := GroupEnquiries(enquiries)
		assert.Len(t, groups, 2)
	})

	t.Run("empty input yields no groups", func(t *testing.T) {
		assert.Empty(t, GroupEnquiries(nil))
	})
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all pending", []Status{StatusPending, StatusPending}, StatusPending},
		{"all approved", []Status{StatusApproved, StatusApproved, StatusApproved}, StatusApproved},
		{"disagreement yields mixed", []Status{StatusApproved, StatusRejected}, StatusMixed},
		{"single member", []Status{StatusCancelled}, StatusCancelled},
		{"empty defaults to pending", nil, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]Enquiry, len(tt.statuses))
			for i, s := range tt.statuses {
				items[i] = Enquiry{Status: s}
			}
			assert.Equal(t, tt.want, OverallStatus(items))
		})
	}
}

func TestOverallStatusAfterSingleUpdate(t *testing.T) {
	// Approving one line of a two-line batch flips the group to mixed;
	// approving the second line settles it back to a common status.
	items := []Enquiry{
		{ID: 1, Status: StatusPending},
		{ID: 2, Status: StatusPending},
	}
	assert.Equal(t, StatusPending, OverallStatus(items))

	items[0].Status = StatusApproved
	assert.Equal(t, StatusMixed, OverallStatus(items))

	items[1].Status = StatusApproved
	assert.Equal(t, StatusApproved, OverallStatus(items))
}

func TestMatchesFilter(t *testing.T) {
	ring := &product.Product{Name: "Gold Ring", Category: "Rings"}
	e := Enquiry{Status: StatusPending, Product: ring}

	t.Run("empty filters match", func(t *testing.T) {
		assert.True(t, MatchesFilter(e, "", ""))
	})

	t.Run("search is case-insensitive over name", func(t *testing.T) {
		assert.True(t, MatchesFilter(e, "gold", ""))
		assert.True(t, MatchesFilter(e, "RING", ""))
	})

	t.Run("search matches category", func(t *testing.T) {
		assert.True(t, MatchesFilter(e, "rings", ""))
	})

	t.Run("non-matching search", func(t *testing.T) {
		assert.False(t, MatchesFilter(e, "necklace", ""))
	})

	t.Run("status is exact", func(t *testing.T) {
		assert.True(t, MatchesFilter(e, "", StatusPending))
		assert.False(t, MatchesFilter(e, "", StatusApproved))
	})

	t.Run("nil product never matches a search", func(t *testing.T) {
		bare := Enquiry{Status: StatusPending}
		assert.False(t, MatchesFilter(bare, "gold", ""))
	})
}

func TestFilterGroups(t *testing.T) {
	ring := &product.Product{Name: "Gold Ring", Category: "Rings"}
	chain := &product.Product{Name: "Silver Chain", Category: "Chains"}
	now := time.Now().UTC()

	groups := GroupEnquiries([]Enquiry{
		{ID: 1, CartID: "c1", Status: StatusApproved, Product: ring, CreatedAt: now},
		{ID: 2, CartID: "c1", Status: StatusPending, Product: chain, CreatedAt: now},
		{ID: 3, CartID: "c2", Status: StatusPending, Product: chain, CreatedAt: now},
	})
	require.Len(t, groups, 2)

	t.Run("group matches when any member matches", func(t *testing.T) {
		filtered := FilterGroups(groups, "gold", "")
		require.Len(t, filtered, 1)
		assert.Equal(t, "c1", filtered[0].Key)
	})

	t.Run("status filter keeps groups with a matching member", func(t *testing.T) {
		filtered := FilterGroups(groups, "", StatusPending)
		assert.Len(t, filtered, 2)

		filtered = FilterGroups(groups, "", StatusApproved)
		require.Len(t, filtered, 1)
		assert.Equal(t, "c1", filtered[0].Key)
	})

	t.Run("mixed filter matches derived group status", func(t *testing.T) {
		filtered := FilterGroups(groups, "", StatusMixed)
		require.Len(t, filtered, 1)
		assert.Equal(t, "c1", filtered[0].Key)
		assert.Equal(t, StatusMixed, filtered[0].OverallStatus)
	})

	t.Run("search and status combine", func(t *testing.T) {
		filtered := FilterGroups(groups, "chain", StatusApproved)
		assert.Empty(t, filtered)
	})

	t.Run("no filters returns input unchanged", func(t *testing.T) {
		assert.Equal(t, groups, FilterGroups(groups, "", ""))
	})
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusApproved))
	assert.True(t, IsValidStatus(StatusRejected))
	assert.True(t, IsValidStatus(StatusCancelled))

	// The display sentinel is not persistable
	assert.False(t, IsValidStatus(StatusMixed))
	assert.False(t, IsValidStatus(Status("shipped")))
	assert.False(t, IsValidStatus(Status("")))
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Enquiry{Status: StatusPending}).CanBeCancelled())
	assert.False(t, (&Enquiry{Status: StatusApproved}).CanBeCancelled())
	assert.False(t, (&Enquiry{Status: StatusRejected}).CanBeCancelled())
	assert.False(t, (&Enquiry{Status: StatusCancelled}).CanBeCancelled())
}
