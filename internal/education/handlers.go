package education

import (
	"database/sql"
	"fmt"
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
	edu := r.PathPrefix("/education").Subrouter()
	edu.Use(auth.SessionMiddleware(db))

	edu.HandleFunc("", modulesHandler(db, client)).Methods("GET")
	edu.HandleFunc("/modules/add", addModuleHandler(db, client)).Methods("POST")
	edu.HandleFunc("/modules/{id:[0-9]+}/update", updateModuleHandler(db, client)).Methods("POST")
	edu.HandleFunc("/modules/{id:[0-9]+}/delete", deleteModuleHandler(db, client)).Methods("POST")

	edu.HandleFunc("/lessons/add", addLessonHandler(db, client)).Methods("POST")
	edu.HandleFunc("/lessons/{id:[0-9]+}/update", updateLessonHandler(db, client)).Methods("POST")
	edu.HandleFunc("/lessons/{id:[0-9]+}/delete", deleteLessonHandler(db, client)).Methods("POST")

	edu.HandleFunc("/packs/add", addPackHandler(db, client)).Methods("POST")
	edu.HandleFunc("/packs/{id:[0-9]+}/update", updatePackHandler(db, client)).Methods("POST")
	edu.HandleFunc("/packs/{id:[0-9]+}/delete", deletePackHandler(db, client)).Methods("POST")

	edu.HandleFunc("/words/add", addWordHandler(db, client)).Methods("POST")
	edu.HandleFunc("/words/{id:[0-9]+}/update", updateWordHandler(db, client)).Methods("POST")
	edu.HandleFunc("/words/{id:[0-9]+}/delete", deleteWordHandler(db, client)).Methods("POST")
	edu.HandleFunc("/words/{id:[0-9]+}/audio", uploadWordAudioHandler(db, client)).Methods("POST")

	edu.HandleFunc("/grammars/add", addGrammarHandler(db, client)).Methods("POST")
	edu.HandleFunc("/grammars/{id:[0-9]+}/update", updateGrammarHandler(db, client)).Methods("POST")
	edu.HandleFunc("/grammars/{id:[0-9]+}/delete", deleteGrammarHandler(db, client)).Methods("POST")

	edu.HandleFunc("/topics/add", addTopicHandler(db, client)).Methods("POST")
	edu.HandleFunc("/topics/{id:[0-9]+}/update", updateTopicHandler(db, client)).Methods("POST")
	edu.HandleFunc("/topics/{id:[0-9]+}/delete", deleteTopicHandler(db, client)).Methods("POST")

	edu.HandleFunc("/{moduleId:[0-9]+}", moduleHandler(db, client)).Methods("GET")
	edu.HandleFunc("/{moduleId:[0-9]+}/{lessonId:[0-9]+}", lessonHandler(db, client)).Methods("GET")
	edu.HandleFunc("/{moduleId:[0-9]+}/{lessonId:[0-9]+}/{packId:[0-9]+}", packHandler(db, client)).Methods("GET")
	edu.HandleFunc("/{moduleId:[0-9]+}/{lessonId:[0-9]+}/{packId:[0-9]+}/topic", topicHandler(db, client)).Methods("GET")
}

func intVar(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

func render(w http.ResponseWriter, name string, data interface{}) {
	templatesMu.RLock()
	t := templates
	templatesMu.RUnlock()

	if t == nil {
		log.Println("Templates not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := t.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func modulesHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		toast := flash.Pop(w, r)

		modules, err := client.Modules(r.Context())
		if err != nil {
			if handleUnauthorized(db, w, r, err) {
				return
			}
			log.Printf("Error fetching modules: %v", err)
			toast = &flash.Message{Kind: "error", Text: apiclient.Message(err, "Failed to fetch modules")}
			modules = nil
		}

		data := struct {
			Toast   *flash.Message
			Modules []models.Module
			Request *http.Request
		}{
			Toast:   toast,
			Modules: modules,
			Request: r,
		}
		render(w, "modules.html", data)
	}
}

func moduleHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		moduleID, err := intVar(r, "moduleId")
		if err != nil {
			http.Error(w, "Invalid module ID", http.StatusBadRequest)
			return
		}

		module, err := client.Module(r.Context(), moduleID)
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch module details", "/education")
			return
		}

		data := struct {
			Toast   *flash.Message
			Module  *models.Module
			Request *http.Request
		}{
			Toast:   flash.Pop(w, r),
			Module:  module,
			Request: r,
		}
		render(w, "module.html", data)
	}
}

func lessonHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
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

		// Parent first: the lesson page breadcrumb needs the module, and a
		// dead module means the whole branch is gone.
		module, err := client.Module(r.Context(), moduleID)
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch module details", "/education")
			return
		}

		lesson, err := client.Lesson(r.Context(), lessonID)
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch lesson details",
				fmt.Sprintf("/education/%d", moduleID))
			return
		}

		data := struct {
			Toast   *flash.Message
			Module  *models.Module
			Lesson  *models.Lesson
			Request *http.Request
		}{
			Toast:   flash.Pop(w, r),
			Module:  module,
			Lesson:  lesson,
			Request: r,
		}
		render(w, "lesson.html", data)
	}
}

func packHandler(db *sql.DB, client *apiclient.Client) http.HandlerFunc {
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

		lessonURL := fmt.Sprintf("/education/%d/%d", moduleID, lessonID)

		pack, err := client.Pack(r.Context(), packID)
		if err != nil {
			auth.RedirectAPIError(db, w, r, err, "Failed to fetch pack details", lessonURL)
			return
		}

		switch pack.Type {
		case models.PackTypeWord:
			words, err := client.WordsByPack(r.Context(), pack.ID)
			if err != nil && !apiclient.IsNotFound(err) {
				auth.RedirectAPIError(db, w, r, err, "Failed to fetch pack details", lessonURL)
				return
			}

			data := struct {
				Toast    *flash.Message
				ModuleID int
				LessonID int
				Pack     *models.Pack
				Words    []models.Word
				APIBase  string
				Request  *http.Request
			}{
				Toast:    flash.Pop(w, r),
				ModuleID: moduleID,
				LessonID: lessonID,
				Pack:     pack,
				Words:    words,
				APIBase:  client.BaseURL(),
				Request:  r,
			}
			render(w, "pack_words.html", data)

		case models.PackTypeGrammar:
			// Topic and question list are independent slices of state;
			// fetch them without blocking each other.
			var (
				wg           sync.WaitGroup
				topic        *models.GrammarTopic
				questions    []models.Grammar
				topicErr     error
				questionsErr error
			)
			wg.Add(2)
			go func() {
				defer wg.Done()
				topic, topicErr = client.TopicByPack(r.Context(), pack.ID)
			}()
			go func() {
				defer wg.Done()
				questions, questionsErr = client.GrammarByPack(r.Context(), pack.ID)
			}()
			wg.Wait()

			// A dead token must end the session even though both fetches
			// are otherwise tolerated.
			if handleUnauthorized(db, w, r, topicErr) || handleUnauthorized(db, w, r, questionsErr) {
				return
			}

			if topicErr != nil {
				// A 404 means the topic hasn't been created yet; anything
				// else is treated the same way and the page offers the
				// create affordance.
				if !apiclient.IsNotFound(topicErr) {
					log.Printf("Error fetching grammar topic for pack %d: %v", pack.ID, topicErr)
				}
				topic = nil
			}
			if questionsErr != nil {
				if !apiclient.IsNotFound(questionsErr) {
					log.Printf("Error fetching grammar questions for pack %d: %v", pack.ID, questionsErr)
				}
				questions = nil
			}

			data := struct {
				Toast     *flash.Message
				ModuleID  int
				LessonID  int
				Pack      *models.Pack
				Topic     *models.GrammarTopic
				Questions []models.Grammar
				Request   *http.Request
			}{
				Toast:     flash.Pop(w, r),
				ModuleID:  moduleID,
				LessonID:  lessonID,
				Pack:      pack,
				Topic:     topic,
				Questions: questions,
				Request:   r,
			}
			render(w, "pack_grammar.html", data)

		default:
			flash.Error(w, "Unknown pack type: "+pack.Type)
			http.Redirect(w, r, lessonURL, http.StatusSeeOther)
		}
	}
}
