package subscriptions

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"linguadmin/internal/models"
)

// ActiveByUser indexes the currently live subscription per user: is_active
// set and the end date still ahead of now. When a user somehow has several,
// the last one in input order wins.
func ActiveByUser(subs []models.Subscription, now time.Time) map[int]models.Subscription {
	active := make(map[int]models.Subscription)
	for _, sub := range subs {
		if sub.IsActive && sub.EndDate.After(now) {
			active[sub.UserID] = sub
		}
	}
	return active
}

// SortByNewest orders payments by creation time, newest first. The sort is
// stable so backend ties keep their relative order.
func SortByNewest(subs []models.Subscription) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
}

// Filter keeps payments whose user's full name, amount or notes contain the
// query, case-insensitively. Input order is preserved; an empty query keeps
// everything.
func Filter(subs []models.Subscription, usersByID map[int]models.User, query string) []models.Subscription {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return subs
	}

	matched := make([]models.Subscription, 0, len(subs))
	for _, sub := range subs {
		fullName := ""
		if user, ok := usersByID[sub.UserID]; ok {
			fullName = strings.ToLower(user.FullName())
		}
		amount := strconv.FormatFloat(sub.Amount, 'f', -1, 64)

		if strings.Contains(fullName, query) ||
			strings.Contains(amount, query) ||
			strings.Contains(strings.ToLower(sub.Notes), query) {
			matched = append(matched, sub)
		}
	}
	return matched
}

// ExpandDate turns a date-only form value into the UTC-midnight RFC 3339
// instant the backend expects. Values that already carry a time component
// pass through unchanged.
func ExpandDate(date string) string {
	if date == "" || strings.Contains(date, "T") {
		return date
	}
	return date + "T00:00:00Z"
}
