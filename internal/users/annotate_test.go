package users

import (
	"testing"
	"time"

	"linguadmin/internal/models"
)

func TestAnnotate(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 1, 0)
	earlier := now.AddDate(0, -1, 0)

	userList := []models.User{
		{ID: 1, FirstName: "Aziza"},
		{ID: 2, FirstName: "Timur"},
		{ID: 3, FirstName: "Malika"},
	}
	subs := []models.Subscription{
		{UserID: 1, IsActive: true, EndDate: later},
		{UserID: 2, IsActive: true, EndDate: earlier}, // lapsed
	}

	got := Annotate(userList, subs, now)
	if len(got) != 3 {
		t.Fatalf("got %d annotated users, want 3", len(got))
	}

	if !got[0].HasActiveSubscription {
		t.Error("user 1 should have an active subscription")
	}
	if got[0].SubscriptionEndDate == nil || !got[0].SubscriptionEndDate.Equal(later) {
		t.Errorf("user 1 end date = %v, want %v", got[0].SubscriptionEndDate, later)
	}

	if got[1].HasActiveSubscription {
		t.Error("user 2's lapsed subscription should not count")
	}
	if got[2].HasActiveSubscription {
		t.Error("user 3 never subscribed")
	}
}

func TestAnnotatePreservesOrder(t *testing.T) {
	userList := []models.User{{ID: 3}, {ID: 1}, {ID: 2}}
	got := Annotate(userList, nil, time.Now())
	for i, want := range []int{3, 1, 2} {
		if got[i].ID != want {
			t.Errorf("position %d = user %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestFilterUsers(t *testing.T) {
	list := []AnnotatedUser{
		{User: models.User{ID: 1, FirstName: "Aziza", LastName: "Karimova", PhoneNumber: "+998901112233"}},
		{User: models.User{ID: 2, FirstName: "Timur", LastName: "Aliyev", PhoneNumber: "+998907654321"}},
	}

	if got := filterUsers(list, "karimova"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("filter by last name = %+v", got)
	}
	if got := filterUsers(list, "765"); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("filter by phone fragment = %+v", got)
	}
	if got := filterUsers(list, ""); len(got) != 2 {
		t.Errorf("empty query should keep all, got %d", len(got))
	}
}
