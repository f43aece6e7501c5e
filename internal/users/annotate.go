package users

import (
	"time"

	"linguadmin/internal/models"
	"linguadmin/internal/subscriptions"
)

// AnnotatedUser pairs a platform user with their current subscription state
// for the directory table.
type AnnotatedUser struct {
	models.User
	HasActiveSubscription bool
	SubscriptionEndDate   *time.Time
}

// Annotate joins users against the payment list, marking who holds a live
// subscription and when it runs out. User order is preserved.
func Annotate(userList []models.User, subs []models.Subscription, now time.Time) []AnnotatedUser {
	active := subscriptions.ActiveByUser(subs, now)

	annotated := make([]AnnotatedUser, 0, len(userList))
	for _, user := range userList {
		entry := AnnotatedUser{User: user}
		if sub, ok := active[user.ID]; ok {
			entry.HasActiveSubscription = true
			endDate := sub.EndDate
			entry.SubscriptionEndDate = &endDate
		}
		annotated = append(annotated, entry)
	}
	return annotated
}
