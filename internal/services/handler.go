package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type serviceRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}

type servicesRepo interface {
	AddService(ctx context.Context, service *Service) error
	UpdateService(ctx context.Context, id string, service Service) error
	DeleteService(ctx context.Context, id string) error
	All(ctx context.Context) ([]*Service, error)
}

type Handler struct {
	repo servicesRepo
}

func NewHandler(repo servicesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/services/new", handler.handleNewService).Methods("POST", "OPTIONS").Name("new-service")
	router.HandleFunc("/services/update", handler.handleUpdateService).Methods("POST", "OPTIONS").Name("update-service")
	router.HandleFunc("/services/delete/{id}", handler.handleDeleteService).Methods("DELETE", "OPTIONS").Name("delete-service")
	router.HandleFunc("/services/all", handler.handleAll).Methods("GET").Name("all-services")
}

func (handler *Handler) handleNewService(w http.ResponseWriter, r *http.Request) {
	var newServiceReq serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&newServiceReq); err != nil {
		log.Errorf("new service, unmarshal json params: %s", err)
		http.Error(w, "add service failed", http.StatusBadRequest)
		return
	}

	if newServiceReq.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	newService := &Service{
		Name:        newServiceReq.Name,
		Description: newServiceReq.Description,
		URL:         newServiceReq.URL,
		Icon:        newServiceReq.Icon,
		Category:    newServiceReq.Category,
		Order:       newServiceReq.Order,
		Active:      newServiceReq.Active,
	}

	if err := handler.repo.AddService(r.Context(), newService); err != nil {
		log.Errorf("add new service failed: %s", err)
		http.Error(w, "add new service failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new service %s: [%s] added", newService.ID.Hex(), newService.Name)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%s", newService.ID.Hex()),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdateService(w http.ResponseWriter, r *http.Request) {
	var updateServiceReq serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&updateServiceReq); err != nil {
		log.Errorf("update service, unmarshal json params: %s", err)
		http.Error(w, "update service failed", http.StatusBadRequest)
		return
	}

	if updateServiceReq.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if updateServiceReq.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.UpdateService(r.Context(), updateServiceReq.ID, Service{
		Name:        updateServiceReq.Name,
		Description: updateServiceReq.Description,
		URL:         updateServiceReq.URL,
		Icon:        updateServiceReq.Icon,
		Category:    updateServiceReq.Category,
		Order:       updateServiceReq.Order,
		Active:      updateServiceReq.Active,
	})
	if errors.Is(err, ErrServiceNotFound) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update service failed: %s", err)
		http.Error(w, "update service failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%s", updateServiceReq.ID))
}

func (handler *Handler) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.DeleteService(r.Context(), id)
	if errors.Is(err, ErrServiceNotFound) {
		http.Error(w, "service not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete service %s: %s", id, err)
		http.Error(w, "error, service not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", id))
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	allServices, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all services error: %s", err)
		http.Error(w, "get all services error", http.StatusInternalServerError)
		return
	}

	allServicesJson, err := json.Marshal(allServices)
	if err != nil {
		log.Errorf("marshal all services error: %s", err)
		http.Error(w, "marshal all services error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, allServicesJson)
}
