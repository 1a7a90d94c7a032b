package about

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type aboutRepo interface {
	Get(ctx context.Context) (*Page, error)
	Save(ctx context.Context, page Page) error
}

type Handler struct {
	repo aboutRepo
}

func NewHandler(repo aboutRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/about", handler.handleGet).Methods("GET").Name("get-about")
	router.HandleFunc("/about", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("update-about")
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	page, err := handler.repo.Get(r.Context())
	if err != nil {
		log.Errorf("get about page: %s", err)
		http.Error(w, "get about page error", http.StatusInternalServerError)
		return
	}

	pageJson, err := json.Marshal(page)
	if err != nil {
		log.Errorf("marshal about page: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, pageJson)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var page Page
	if err := json.NewDecoder(r.Body).Decode(&page); err != nil {
		log.Errorf("update about page, unmarshal json params: %s", err)
		http.Error(w, "update about page failed", http.StatusBadRequest)
		return
	}

	page.UpdatedAt = time.Now()
	if err := handler.repo.Save(r.Context(), page); err != nil {
		log.Errorf("update about page: %s", err)
		http.Error(w, "update about page failed", http.StatusInternalServerError)
		return
	}

	pageJson, err := json.Marshal(page)
	if err != nil {
		log.Errorf("marshal about page: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, pageJson)
}
