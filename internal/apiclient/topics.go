package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"linguadmin/internal/models"
)

type CreateTopicRequest struct {
	PackID       int    `json:"pack_id"`
	VideoURL     string `json:"video_url"`
	MarkdownText string `json:"markdown_text"`
}

type UpdateTopicRequest struct {
	VideoURL     string `json:"video_url"`
	MarkdownText string `json:"markdown_text"`
}

// TopicByPack fetches the pack's single grammar topic. A wrapped
// ErrNotFound means the topic has not been created yet.
func (c *Client) TopicByPack(ctx context.Context, packID int) (*models.GrammarTopic, error) {
	var topic models.GrammarTopic
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/grammar/topics?pack_id=%d", packID), nil, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) CreateTopic(ctx context.Context, req CreateTopicRequest) (*models.GrammarTopic, error) {
	var topic models.GrammarTopic
	if err := c.do(ctx, http.MethodPost, "/api/grammar/topics", req, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) UpdateTopic(ctx context.Context, id int, req UpdateTopicRequest) (*models.GrammarTopic, error) {
	var topic models.GrammarTopic
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/grammar/topics/%d", id), req, &topic); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (c *Client) DeleteTopic(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/grammar/topics/%d", id), nil, nil)
}
