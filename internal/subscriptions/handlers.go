package subscriptions

import (
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
	"linguadmin/internal/models"
)

var (
	templates   *template.Template
	templatesMu sync.RWMutex
)

func InitTemplates(t *template.Template) {
	templatesMu.Lock()
	defer templatesMu.Unlock()
	templates = t
}

func RegisterHandlers(r *mux.Router, db *sql.DB, client *apiclient.Client) {
	subs := r.PathPrefix("/subscriptions").Subrouter()
	subs.Use(auth.SessionMiddleware(db))

	subs.HandleFunc("", listHandler(db, client)).Methods("GET")
	subs.HandleFunc("/add", addHandler(db, client)).Methods("POST")
	subs.HandleFunc("/{id:[0-9]+}/update", updateHandler(db, client)).Methods("POST")
	subs.HandleFunc("/{id:[0-9]+}/delete", deleteHandler(db, client)).Methods("POST")
}

func listHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			wg       sync.WaitGroup
			payments []models.Subscription
			stats    *models.SubscriptionStats
			users    []models.User
			payErr   error
			statsErr error
			usersErr error
		)
		wg.Add(3)
		go func() {
			defer wg.Done()
			payments, payErr = client.Payments(r.Context())
		}()
		go func() {
			defer wg.Done()
			stats, statsErr = client.PaymentStats(r.Context())
		}()
		go func() {
			defer wg.Done()
			users, usersErr = client.Users(r.Context())
		}()
		wg.Wait()

		if payErr != nil {
			auth.RedirectAPIError(db, w, r, payErr, "Failed to fetch payments", "/")
			return
		}
		// A 401 on any of the fetches means the stored token is dead.
		if errors.Is(statsErr, apiclient.ErrUnauthorized) || errors.Is(usersErr, apiclient.ErrUnauthorized) {
			auth.Expire(db, w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		// Stats and the user directory are decoration; render without them.
		if statsErr != nil {
			log.Printf("Error fetching payment stats: %v", statsErr)
			stats = nil
		}
		if usersErr != nil {
			log.Printf("Error fetching users for payment list: %v", usersErr)
			users = nil
		}

		usersByID := make(map[int]models.User, len(users))
		for _, user := range users {
			usersByID[user.ID] = user
		}

		SortByNewest(payments)
		query := r.URL.Query().Get("q")
		filtered := Filter(payments, usersByID, query)

		data := struct {
			Toast     *flash.Message
			Payments  []models.Subscription
			Stats     *models.SubscriptionStats
			Users     []models.User
			UsersByID map[int]models.User
			Query     string
			Request   *http.Request
		}{
			Toast:     flash.Pop(w, r),
			Payments:  filtered,
			Stats:     stats,
			Users:     users,
			UsersByID: usersByID,
			Query:     query,
			Request:   r,
		}

		templatesMu.RLock()
		t := templates
		templatesMu.RUnlock()
		if t == nil {
			log.Println("Templates not initialized")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := t.ExecuteTemplate(w, "subscriptions.html", data); err != nil {
			log.Printf("Error rendering subscriptions template: %v", err)
			http.Error(w, "Error rendering template", http.StatusInternalServerError)
		}
	}
}

func addHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(r.FormValue("user_id"))
		if err != nil || userID <= 0 {
			flash.Error(w, "Select a user for the payment")
			http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
			return
		}

		startDate := r.FormValue("start_date")
		endDate := r.FormValue("end_date")
		if startDate == "" || endDate == "" {
			flash.Error(w, "Start and end dates are required")
			http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
			return
		}

		amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
		if err != nil || amount <= 0 {
			flash.Error(w, "Amount must be a positive number")
			http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
			return
		}

		currency := r.FormValue("currency")
		if currency == "" {
			currency = "UZS"
		}

		_, err = client.CreatePayment(r.Context(), apiclient.CreatePaymentRequest{
			UserID:    userID,
			StartDate: ExpandDate(startDate),
			EndDate:   ExpandDate(endDate),
			Amount:    amount,
			Currency:  currency,
			Notes:     r.FormValue("notes"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create payment", "/subscriptions")
			return
		}

		flash.Success(w, "Payment created successfully")
		http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
	}
}

func updateHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid payment ID", http.StatusBadRequest)
			return
		}

		startDate := r.FormValue("start_date")
		endDate := r.FormValue("end_date")
		if startDate == "" || endDate == "" {
			flash.Error(w, "Start and end dates are required")
			http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
			return
		}

		amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
		if err != nil || amount <= 0 {
			flash.Error(w, "Amount must be a positive number")
			http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
			return
		}

		_, err = client.UpdatePayment(r.Context(), id, apiclient.UpdatePaymentRequest{
			StartDate: ExpandDate(startDate),
			EndDate:   ExpandDate(endDate),
			Amount:    amount,
			Notes:     r.FormValue("notes"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update payment", "/subscriptions")
			return
		}

		flash.Success(w, "Payment updated successfully")
		http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
	}
}

func deleteHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			http.Error(w, "Invalid payment ID", http.StatusBadRequest)
			return
		}

		if err := client.DeletePayment(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete payment", "/subscriptions")
			return
		}

		flash.Success(w, "Payment deleted successfully")
		http.Redirect(w, r, "/subscriptions", http.StatusSeeOther)
	}
}
