package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"linguadmin/internal/models"
)

type CreateWordRequest struct {
	PackID int    `json:"pack_id"`
	RuText string `json:"ru_text"`
	UzText string `json:"uz_text"`
}

type UpdateWordRequest struct {
	RuText string `json:"ru_text"`
	UzText string `json:"uz_text"`
}

func (c *Client) WordsByPack(ctx context.Context, packID int) ([]models.Word, error) {
	var words []models.Word
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/words?pack_id=%d", packID), nil, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (c *Client) CreateWord(ctx context.Context, req CreateWordRequest) (*models.Word, error) {
	var word models.Word
	if err := c.do(ctx, http.MethodPost, "/api/quiz/words", req, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

func (c *Client) UpdateWord(ctx context.Context, id int, req UpdateWordRequest) (*models.Word, error) {
	var word models.Word
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/quiz/words/%d", id), req, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

func (c *Client) DeleteWord(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/quiz/words/%d", id), nil, nil)
}

// UploadWordAudio sends the audio file as multipart/form-data. Validation
// of size and format happens before this call; see education.ValidateAudio.
func (c *Client) UploadWordAudio(ctx context.Context, wordID int, filename string, file io.Reader) (*models.Word, error) {
	var word models.Word
	path := fmt.Sprintf("/api/quiz/words/%d/audio", wordID)
	if err := c.upload(ctx, path, "audio", filename, file, &word); err != nil {
		return nil, err
	}
	return &word, nil
}

// GrammarRequest covers both question kinds. Fill questions carry
// QuestionText/Options/CorrectOption, build questions only Sentence.
type GrammarRequest struct {
	PackID        int      `json:"pack_id,omitempty"`
	Type          string   `json:"type"`
	QuestionText  string   `json:"question_text,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectOption *int     `json:"correct_option,omitempty"`
	Sentence      string   `json:"sentence,omitempty"`
}

func (c *Client) GrammarByPack(ctx context.Context, packID int) ([]models.Grammar, error) {
	var questions []models.Grammar
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/quiz/grammars?pack_id=%d", packID), nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) CreateGrammar(ctx context.Context, req GrammarRequest) (*models.Grammar, error) {
	var question models.Grammar
	if err := c.do(ctx, http.MethodPost, "/api/quiz/grammars", req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) UpdateGrammar(ctx context.Context, id int, req GrammarRequest) (*models.Grammar, error) {
	var question models.Grammar
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/quiz/grammars/%d", id), req, &question); err != nil {
		return nil, err
	}
	return &question, nil
}

func (c *Client) DeleteGrammar(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/quiz/grammars/%d", id), nil, nil)
}
