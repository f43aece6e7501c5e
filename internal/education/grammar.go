package education

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
	"linguadmin/internal/models"
)

// BlankMarker is the placeholder the mobile app renders as the gap in a
// fill-in-the-blank question.
const BlankMarker = "___"

// SplitQuestionText breaks a stored question into the text before and after
// the blank, for editing as two separate inputs. Text after a second marker
// is discarded; questions are expected to carry exactly one blank.
func SplitQuestionText(questionText string) (before, after string) {
	head, tail, _ := strings.Cut(questionText, BlankMarker)
	return strings.TrimSpace(head), strings.TrimSpace(tail)
}

// JoinQuestionText rebuilds the stored form from the two inputs. Empty
// sides collapse cleanly: ("", "to school") yields "___ to school".
func JoinQuestionText(before, after string) string {
	return strings.TrimSpace(before + " " + BlankMarker + " " + after)
}

// FilterOptions drops answer choices that are blank after trimming, keeping
// the original text of the rest. Note the submitted correct-option index is
// NOT remapped against the filtered list; it is passed through as chosen.
func FilterOptions(options []string) []string {
	kept := make([]string, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			kept = append(kept, opt)
		}
	}
	return kept
}

func parseGrammarForm(r *http.Request, packID int) apiclient.GrammarRequest {
	req := apiclient.GrammarRequest{
		PackID: packID,
		Type:   r.FormValue("type"),
	}

	switch req.Type {
	case models.GrammarTypeFill:
		req.QuestionText = JoinQuestionText(r.FormValue("text_before"), r.FormValue("text_after"))
		req.Options = FilterOptions([]string{
			r.FormValue("option_0"),
			r.FormValue("option_1"),
			r.FormValue("option_2"),
			r.FormValue("option_3"),
		})
		correct, _ := strconv.Atoi(r.FormValue("correct_option"))
		req.CorrectOption = &correct
	case models.GrammarTypeBuild:
		req.Sentence = r.FormValue("sentence")
	}
	return req
}

func validGrammarForm(req apiclient.GrammarRequest) string {
	switch req.Type {
	case models.GrammarTypeFill:
		if req.QuestionText == BlankMarker {
			return "Question text is required"
		}
		if len(req.Options) < 2 {
			return "At least two answer options are required"
		}
	case models.GrammarTypeBuild:
		if strings.TrimSpace(req.Sentence) == "" {
			return "Sentence is required"
		}
	default:
		return "Unknown question type"
	}
	return ""
}

func addGrammarHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backURL := packURL(r)

		req := parseGrammarForm(r, formInt(r, "pack_id"))
		if msg := validGrammarForm(req); msg != "" {
			flash.Error(w, msg)
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		if _, err := client.CreateGrammar(r.Context(), req); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create question", backURL)
			return
		}

		flash.Success(w, "Question created successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}

func updateGrammarHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}
		backURL := packURL(r)

		req := parseGrammarForm(r, 0)
		if msg := validGrammarForm(req); msg != "" {
			flash.Error(w, msg)
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		if _, err := client.UpdateGrammar(r.Context(), id, req); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update question", backURL)
			return
		}

		flash.Success(w, "Question updated successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}

func deleteGrammarHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid question ID", http.StatusBadRequest)
			return
		}
		backURL := packURL(r)

		if err := client.DeleteGrammar(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete question", backURL)
			return
		}

		flash.Success(w, "Question deleted successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}
