package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"linguadmin/internal/models"
)

type CreatePaymentRequest struct {
	UserID    int     `json:"user_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Notes     string  `json:"notes"`
}

type UpdatePaymentRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Amount    float64 `json:"amount"`
	Notes     string  `json:"notes"`
}

func (c *Client) Payments(ctx context.Context) ([]models.Subscription, error) {
	var payments []models.Subscription
	if err := c.do(ctx, http.MethodGet, "/api/subscription/admin/payment", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Subscription, error) {
	var payment models.Subscription
	if err := c.do(ctx, http.MethodPost, "/api/subscription/admin/payment", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id int, req UpdatePaymentRequest) (*models.Subscription, error) {
	var payment models.Subscription
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/subscription/admin/payment/%d", id), req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) DeletePayment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/subscription/admin/payment/%d", id), nil, nil)
}

func (c *Client) PaymentStats(ctx context.Context) (*models.SubscriptionStats, error) {
	var stats models.SubscriptionStats
	if err := c.do(ctx, http.MethodGet, "/api/subscription/admin/payment/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Business(ctx context.Context) (*models.BusinessConfig, error) {
	var business models.BusinessConfig
	if err := c.do(ctx, http.MethodGet, "/api/subscription/admin/business", nil, &business); err != nil {
		return nil, err
	}
	return &business, nil
}

type UpdateBusinessRequest struct {
	TelegramURL        string `json:"telegram_url"`
	InstagramURL       string `json:"instagram_url"`
	WebsiteURL         string `json:"website_url"`
	SupportEmail       string `json:"support_email"`
	RequiredAppVersion string `json:"required_app_version"`
	CompanyName        string `json:"company_name"`
}

func (c *Client) UpdateBusiness(ctx context.Context, req UpdateBusinessRequest) (*models.BusinessConfig, error) {
	var business models.BusinessConfig
	if err := c.do(ctx, http.MethodPut, "/api/subscription/admin/business", req, &business); err != nil {
		return nil, err
	}
	return &business, nil
}
