package apiclient

import (
	"context"
	"net/http"

	"linguadmin/internal/models"
)

type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (c *Client) Login(ctx context.Context, phoneNumber, password string) (*models.AuthResponse, error) {
	var tokens models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/admin/login", LoginRequest{
		PhoneNumber: phoneNumber,
		Password:    password,
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var payload struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Users, nil
}
