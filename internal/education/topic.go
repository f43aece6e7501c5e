package education

import (
	"bytes"
	"database/sql"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
	"linguadmin/internal/linkpreview"
	"linguadmin/internal/models"
)

var telegramURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://t\.me/`),
	regexp.MustCompile(`^https?://telegram\.me/`),
	regexp.MustCompile(`^https?://[^/]*telegram[^/]*/`),
}

// ValidTelegramURL reports whether the lesson video link points at Telegram,
// where the platform hosts its video content.
func ValidTelegramURL(rawURL string) bool {
	for _, pattern := range telegramURLPatterns {
		if pattern.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// RenderMarkdown converts topic markdown to HTML for the preview tab.
func RenderMarkdown(markdownText string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdownText), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func topicHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := intVar(r, "moduleId")
		if err != nil {
			http.Error(w, "Invalid module ID", http.StatusBadRequest)
			return
		}
		lessonID, err := intVar(r, "lessonId")
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		packID, err := intVar(r, "packId")
		if err != nil {
			http.Error(w, "Invalid pack ID", http.StatusBadRequest)
			return
		}

		backURL := fmt.Sprintf("/education/%d/%d/%d", moduleID, lessonID, packID)

		pack, err := client.Pack(r.Context(), packID)
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch pack details", backURL)
			return
		}
		if pack.Type != models.PackTypeGrammar {
			flash.Error(w, "Only grammar packs have topics")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		topic, err := client.TopicByPack(r.Context(), packID)
		if err != nil && !apiclient.IsNotFound(err) {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch topic", backURL)
			return
		}

		var (
			preview    template.HTML
			charCount  int
			wordCount  int
			videoTitle string
		)
		if topic != nil {
			preview, err = RenderMarkdown(topic.MarkdownText)
			if err != nil {
				log.Printf("Error rendering topic %d markdown: %v", topic.ID, err)
			}
			charCount = len([]rune(topic.MarkdownText))
			wordCount = countWords(topic.MarkdownText)

			if topic.VideoURL != "" {
				if meta, err := linkpreview.Fetch(r.Context(), topic.VideoURL); err == nil {
					videoTitle = meta.Title
				}
			}
		}

		data := struct {
			Toast      *flash.Message
			ModuleID   int
			LessonID   int
			Pack       *models.Pack
			Topic      *models.GrammarTopic
			Preview    template.HTML
			CharCount  int
			WordCount  int
			VideoTitle string
			Request    *http.Request
		}{
			Toast:      flash.Pop(w, r),
			ModuleID:   moduleID,
			LessonID:   lessonID,
			Pack:       pack,
			Topic:      topic,
			Preview:    preview,
			CharCount:  charCount,
			WordCount:  wordCount,
			VideoTitle: videoTitle,
			Request:    r,
		}
		render(w, "topic.html", data)
	}
}

func addTopicHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backURL := packURL(r)
		topicURL := backURL + "/topic"

		videoURL := r.FormValue("video_url")
		if videoURL == "" {
			flash.Error(w, "Video URL is required")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}
		if !ValidTelegramURL(videoURL) {
			flash.Error(w, "Video URL must be a Telegram link")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		_, err := client.CreateTopic(r.Context(), apiclient.CreateTopicRequest{
			PackID:       formInt(r, "pack_id"),
			VideoURL:     videoURL,
			MarkdownText: r.FormValue("markdown_text"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create topic", backURL)
			return
		}

		flash.Success(w, "Topic created successfully")
		http.Redirect(w, r, topicURL, http.StatusSeeOther)
	}
}

func updateTopicHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid topic ID", http.StatusBadRequest)
			return
		}
		topicURL := packURL(r) + "/topic"

		videoURL := r.FormValue("video_url")
		if videoURL != "" && !ValidTelegramURL(videoURL) {
			flash.Error(w, "Video URL must be a Telegram link")
			http.Redirect(w, r, topicURL, http.StatusSeeOther)
			return
		}

		_, err = client.UpdateTopic(r.Context(), id, apiclient.UpdateTopicRequest{
			VideoURL:     videoURL,
			MarkdownText: r.FormValue("markdown_text"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to save topic", topicURL)
			return
		}

		flash.Success(w, "Topic saved successfully")
		http.Redirect(w, r, topicURL, http.StatusSeeOther)
	}
}

func deleteTopicHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid topic ID", http.StatusBadRequest)
			return
		}
		backURL := packURL(r)

		if err := client.DeleteTopic(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete topic", backURL)
			return
		}

		flash.Success(w, "Topic deleted successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}
