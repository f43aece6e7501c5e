package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"linguadmin/internal/models"
)

type CreateModuleRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

type UpdateModuleRequest struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

func (c *Client) Modules(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := c.do(ctx, http.MethodGet, "/api/education/modules", nil, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// Module fetches one module with its lessons embedded.
func (c *Client) Module(ctx context.Context, id int) (*models.Module, error) {
	var module models.Module
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/education/modules/%d", id), nil, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *Client) CreateModule(ctx context.Context, req CreateModuleRequest) (*models.Module, error) {
	var module models.Module
	if err := c.do(ctx, http.MethodPost, "/api/education/modules", req, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *Client) UpdateModule(ctx context.Context, id int, req UpdateModuleRequest) (*models.Module, error) {
	var module models.Module
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/education/modules/%d", id), req, &module); err != nil {
		return nil, err
	}
	return &module, nil
}

func (c *Client) DeleteModule(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/education/modules/%d", id), nil, nil)
}

type CreateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ModuleID    int    `json:"module_id"`
	Order       int    `json:"order"`
}

type UpdateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Lesson fetches one lesson with its packs embedded.
func (c *Client) Lesson(ctx context.Context, id int) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/education/lessons/%d", id), nil, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) CreateLesson(ctx context.Context, req CreateLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, http.MethodPost, "/api/education/lessons", req, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) UpdateLesson(ctx context.Context, id int, req UpdateLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/education/lessons/%d", id), req, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (c *Client) DeleteLesson(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/education/lessons/%d", id), nil, nil)
}

type CreatePackRequest struct {
	Title     string `json:"title"`
	LessonID  int    `json:"lesson_id"`
	Type      string `json:"type"`
	WordCount int    `json:"word_count"`
}

type UpdatePackRequest struct {
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

func (c *Client) Pack(ctx context.Context, id int) (*models.Pack, error) {
	var pack models.Pack
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/education/packs/%d", id), nil, &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (c *Client) CreatePack(ctx context.Context, req CreatePackRequest) (*models.Pack, error) {
	var pack models.Pack
	if err := c.do(ctx, http.MethodPost, "/api/education/packs", req, &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (c *Client) UpdatePack(ctx context.Context, id int, req UpdatePackRequest) (*models.Pack, error) {
	var pack models.Pack
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/education/packs/%d", id), req, &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (c *Client) DeletePack(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/education/packs/%d", id), nil, nil)
}
