package settings

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type settingsRepo interface {
	All(ctx context.Context) ([]*Setting, error)
	Upsert(ctx context.Context, setting Setting) error
}

type Handler struct {
	repo settingsRepo
}

func NewHandler(repo settingsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/settings", handler.handleGet).Methods("GET").Name("get-settings")
	router.HandleFunc("/settings", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-settings")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	allSettings, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get settings: %s", err)
		http.Error(w, "get settings error", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(allSettings)
	if err != nil {
		log.Errorf("marshal settings: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, settingsJson)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var incoming []Setting
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		log.Errorf("update settings, unmarshal json params: %s", err)
		http.Error(w, "update settings failed", http.StatusBadRequest)
		return
	}

	now := time.Now()
	for _, setting := range incoming {
		if setting.Key == "" {
			http.Error(w, "error, setting key empty", http.StatusBadRequest)
			return
		}
		setting.UpdatedAt = now
		if err := handler.repo.Upsert(r.Context(), setting); err != nil {
			log.Errorf("upsert setting [%s]: %s", setting.Key, err)
			http.Error(w, "update settings failed", http.StatusInternalServerError)
			return
		}
	}

	allSettings, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get settings after update: %s", err)
		http.Error(w, "update settings failed", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(allSettings)
	if err != nil {
		log.Errorf("marshal settings: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, settingsJson)
}
