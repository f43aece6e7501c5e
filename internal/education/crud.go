package education

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"linguadmin/internal/apiclient"
	"linguadmin/internal/auth"
	"linguadmin/internal/flash"
)

// handleUnauthorized covers the pages that render inline instead of
// redirecting on failure: a 401 still has to kill the session.
func handleUnauthorized(db *sql.DB, w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		auth.Expire(db, w, r)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return true
	}
	return false
}

func formInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.FormValue(name))
	return v
}

func addModuleHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Module title is required")
			http.Redirect(w, r, "/education", http.StatusSeeOther)
			return
		}

		_, err := client.CreateModule(r.Context(), apiclient.CreateModuleRequest{
			Title: title,
			Order: formInt(r, "order"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create module", "/education")
			return
		}

		flash.Success(w, "Module created successfully")
		http.Redirect(w, r, "/education", http.StatusSeeOther)
	}
}

func updateModuleHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid module ID", http.StatusBadRequest)
			return
		}

		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Module title is required")
			http.Redirect(w, r, "/education", http.StatusSeeOther)
			return
		}

		_, err = client.UpdateModule(r.Context(), id, apiclient.UpdateModuleRequest{
			Title: title,
			Order: formInt(r, "order"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update module", "/education")
			return
		}

		flash.Success(w, "Module updated successfully")
		http.Redirect(w, r, "/education", http.StatusSeeOther)
	}
}

func deleteModuleHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid module ID", http.StatusBadRequest)
			return
		}

		if err := client.DeleteModule(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete module", "/education")
			return
		}

		flash.Success(w, "Module deleted successfully")
		http.Redirect(w, r, "/education", http.StatusSeeOther)
	}
}

func addLessonHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID := formInt(r, "module_id")
		moduleURL := fmt.Sprintf("/education/%d", moduleID)

		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Lesson title is required")
			http.Redirect(w, r, moduleURL, http.StatusSeeOther)
			return
		}

		_, err := client.CreateLesson(r.Context(), apiclient.CreateLessonRequest{
			Title:       title,
			Description: r.FormValue("description"),
			ModuleID:    moduleID,
			Order:       formInt(r, "order"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create lesson", moduleURL)
			return
		}

		flash.Success(w, "Lesson created successfully")
		http.Redirect(w, r, moduleURL, http.StatusSeeOther)
	}
}

func updateLessonHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		moduleURL := fmt.Sprintf("/education/%d", formInt(r, "module_id"))

		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Lesson title is required")
			http.Redirect(w, r, moduleURL, http.StatusSeeOther)
			return
		}

		_, err = client.UpdateLesson(r.Context(), id, apiclient.UpdateLessonRequest{
			Title:       title,
			Description: r.FormValue("description"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update lesson", moduleURL)
			return
		}

		flash.Success(w, "Lesson updated successfully")
		http.Redirect(w, r, moduleURL, http.StatusSeeOther)
	}
}

func deleteLessonHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		moduleURL := fmt.Sprintf("/education/%d", formInt(r, "module_id"))

		if err := client.DeleteLesson(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete lesson", moduleURL)
			return
		}

		flash.Success(w, "Lesson deleted successfully")
		http.Redirect(w, r, moduleURL, http.StatusSeeOther)
	}
}

func addPackHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lessonID := formInt(r, "lesson_id")
		lessonURL := fmt.Sprintf("/education/%d/%d", formInt(r, "module_id"), lessonID)

		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Pack title is required")
			http.Redirect(w, r, lessonURL, http.StatusSeeOther)
			return
		}

		packType := r.FormValue("type")
		if packType == "" {
			packType = "word"
		}

		_, err := client.CreatePack(r.Context(), apiclient.CreatePackRequest{
			Title:     title,
			LessonID:  lessonID,
			Type:      packType,
			WordCount: formInt(r, "word_count"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to create pack", lessonURL)
			return
		}

		flash.Success(w, "Pack created successfully")
		http.Redirect(w, r, lessonURL, http.StatusSeeOther)
	}
}

func updatePackHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid pack ID", http.StatusBadRequest)
			return
		}
		lessonURL := fmt.Sprintf("/education/%d/%d", formInt(r, "module_id"), formInt(r, "lesson_id"))

		title := r.FormValue("title")
		if title == "" {
			flash.Error(w, "Pack title is required")
			http.Redirect(w, r, lessonURL, http.StatusSeeOther)
			return
		}

		_, err = client.UpdatePack(r.Context(), id, apiclient.UpdatePackRequest{
			Title:     title,
			WordCount: formInt(r, "word_count"),
		})
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to update pack", lessonURL)
			return
		}

		flash.Success(w, "Pack updated successfully")
		http.Redirect(w, r, lessonURL, http.StatusSeeOther)
	}
}

func deletePackHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := intVar(r, "id")
		if err != nil {
			http.Error(w, "Invalid pack ID", http.StatusBadRequest)
			return
		}
		lessonURL := fmt.Sprintf("/education/%d/%d", formInt(r, "module_id"), formInt(r, "lesson_id"))

		if err := client.DeletePack(r.Context(), id); err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to delete pack", lessonURL)
			return
		}

		flash.Success(w, "Pack deleted successfully")
		http.Redirect(w, r, lessonURL, http.StatusSeeOther)
	}
}
