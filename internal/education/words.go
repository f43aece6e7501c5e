package education

import (
	"database/sql"
	"fmt"
	"net/http"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
)

func packURL(r *http.Request) string {
	return fmt.Sprintf("/education/%d/%d/%d",
		formInt(r, "module_id"), formInt(r, "lesson_id"), formInt(r, "pack_id"))
}

func addWordHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		backURL := packURL(r)

		ruText := r.FormValue("ru_text")
		uzText := r.FormValue("uz_text")
		if ruText == "" || uzText == "" {
			flash.Error(w, "Both translations are required")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		_, err := client.CreateWord(r.Context(), apiclient.CreateWordRequest{
			PackID: formInt(r, "pack_id"),
			RuText: ruText,
			UzText: uzText,
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create word", backURL)
			return
		}

		flash.Success(w, "Word created successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}

func updateWordHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid word ID", http.StatusBadRequest)
			return
		}
		backURL := packURL(r)

		ruText := r.FormValue("ru_text")
		uzText := r.FormValue("uz_text")
		if ruText == "" || uzText == "" {
			flash.Error(w, "Both translations are required")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		_, err = client.UpdateWord(r.Context(), id, apiclient.UpdateWordRequest{
			RuText: ruText,
			UzText: uzText,
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update word", backURL)
			return
		}

		flash.Success(w, "Word updated successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}

func deleteWordHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid word ID", http.StatusBadRequest)
			return
		}
		backURL := packURL(r)

		if err := client.DeleteWord(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete word", backURL)
			return
		}

		flash.Success(w, "Word deleted successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}

func uploadWordAudioHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid word ID", http.StatusBadRequest)
			return
		}

		if err := r.ParseMultipartForm(2 * MaxAudioSize); err != nil {
			flash.Error(w, "Failed to read uploaded file")
			http.Redirect(w, r, "/education", http.StatusSeeOther)
			return
		}
		backURL := packURL(r)

		file, header, err := r.FormFile("audio")
		if err != nil {
			flash.Error(w, "Audio file is required")
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}
		defer file.Close()

		// Reject oversized or unrecognised files locally; nothing is sent
		// to the backend until the file passes.
		if err := ValidateAudio(header.Filename, header.Header.Get("Content-Type"), header.Size); err != nil {
			flash.Error(w, err.Error())
			http.Redirect(w, r, backURL, http.StatusSeeOther)
			return
		}

		if _, err := client.UploadWordAudio(r.Context(), id, header.Filename, file); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to upload audio", backURL)
			return
		}

		flash.Success(w, "Audio uploaded successfully")
		http.Redirect(w, r, backURL, http.StatusSeeOther)
	}
}
