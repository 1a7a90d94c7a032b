package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type eventRequest struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	Location        string    `json:"location"`
	Category        string    `json:"category"`
	Organizer       string    `json:"organizer"`
	Status          string    `json:"status"`
	MaxParticipants int       `json:"max_participants"`
	RegistrationURL string    `json:"registration_url"`
	Published       bool      `json:"published"`
}

func (req *eventRequest) toEvent() (Event, error) {
	status := EventStatus(req.Status)
	if status == "" {
		status = EventStatusUpcoming
	}
	if !status.IsValid() {
		return Event{}, ErrInvalidEventStatus
	}
	return Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Location:        req.Location,
		Category:        req.Category,
		Organizer:       req.Organizer,
		Status:          status,
		MaxParticipants: req.MaxParticipants,
		RegistrationURL: req.RegistrationURL,
		Published:       req.Published,
	}, nil
}

type eventsRepo interface {
	AddEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, id string, event Event) error
	DeleteEvent(ctx context.Context, id string) error
	All(ctx context.Context) ([]*Event, error)
}

type Handler struct {
	repo eventsRepo
}

func NewHandler(repo eventsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/events/new", handler.handleNewEvent).Methods("POST", "OPTIONS").Name("new-event")
	router.HandleFunc("/events/update", handler.handleUpdateEvent).Methods("POST", "OPTIONS").Name("update-event")
	router.HandleFunc("/events/delete/{id}", handler.handleDeleteEvent).Methods("DELETE", "OPTIONS").Name("delete-event")
	router.HandleFunc("/events/all", handler.handleAll).Methods("GET").Name("all-events")
}

func (handler *Handler) handleNewEvent(w http.ResponseWriter, r *http.Request) {
	var newEventReq eventRequest
	if err := json.NewDecoder(r.Body).Decode(&newEventReq); err != nil {
		log.Errorf("new event, unmarshal json params: %s", err)
		http.Error(w, "add event failed", http.StatusBadRequest)
		return
	}

	if newEventReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}

	newEvent, err := newEventReq.toEvent()
	if errors.Is(err, ErrInvalidEventStatus) {
		http.Error(w, "error, invalid event status", http.StatusBadRequest)
		return
	}

	if err := handler.repo.AddEvent(r.Context(), &newEvent); err != nil {
		log.Errorf("add new event failed: %s", err)
		http.Error(w, "add new event failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("new event %s: [%s] added", newEvent.ID.Hex(), newEvent.Title)

	pkg.WriteResponse(
		w,
		pkg.ContentType.Text,
		fmt.Sprintf("added:%s", newEvent.ID.Hex()),
		http.StatusCreated,
	)
}

func (handler *Handler) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var updateEventReq eventRequest
	if err := json.NewDecoder(r.Body).Decode(&updateEventReq); err != nil {
		log.Errorf("update event, unmarshal json params: %s", err)
		http.Error(w, "update event failed", http.StatusBadRequest)
		return
	}

	if updateEventReq.ID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	if updateEventReq.Title == "" {
		http.Error(w, "error, title empty", http.StatusBadRequest)
		return
	}

	updatedEvent, err := updateEventReq.toEvent()
	if errors.Is(err, ErrInvalidEventStatus) {
		http.Error(w, "error, invalid event status", http.StatusBadRequest)
		return
	}

	err = handler.repo.UpdateEvent(r.Context(), updateEventReq.ID, updatedEvent)
	if errors.Is(err, ErrEventNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("update event failed: %s", err)
		http.Error(w, "update event failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%s", updateEventReq.ID))
}

func (handler *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	err := handler.repo.DeleteEvent(r.Context(), id)
	if errors.Is(err, ErrEventNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("delete event %s: %s", id, err)
		http.Error(w, "error, event not deleted, internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("deleted:%s", id))
}

func (handler *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	allEvents, err := handler.repo.All(r.Context())
	if err != nil {
		log.Errorf("get all events error: %s", err)
		http.Error(w, "get all events error", http.StatusInternalServerError)
		return
	}

	allEventsJson, err := json.Marshal(allEvents)
	if err != nil {
		log.Errorf("marshal all events error: %s", err)
		http.Error(w, "marshal all events error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, allEventsJson)
}
