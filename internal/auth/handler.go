package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkalens/sitehub/internal/telemetry/metrics"
	"github.com/mkalens/sitehub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type setupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type adminInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	Admin   adminInfo `json:"admin"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	authRouter := mainRouter.PathPrefix("/a").Subrouter()
	authRouter.HandleFunc("/check-setup", handler.handleCheckSetup).Methods("GET", "OPTIONS").Name("check-setup")
	authRouter.HandleFunc("/setup", handler.handleSetup).Methods("POST", "OPTIONS").Name("setup")
	authRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/change-password", handler.handleChangePassword).Methods("POST", "OPTIONS").Name("change-password")
}

func (handler *Handler) handleCheckSetup(w http.ResponseWriter, r *http.Request) {
	needsSetup, err := handler.service.NeedsSetup(r.Context())
	if err != nil {
		log.Errorf("check setup: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp, err := json.Marshal(map[string]bool{"needsSetup": needsSetup})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) handleSetup(w http.ResponseWriter, r *http.Request) {
	var setupReq setupRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&setupReq); err != nil {
			log.Errorf("setup, unmarshal json params: %s", err)
			http.Error(w, "setup failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("setup failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		setupReq = setupRequest{
			Username: r.Form.Get("username"),
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if setupReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if setupReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	admin, token, err := handler.service.Setup(r.Context(), setupReq.Username, setupReq.Email, setupReq.Password)
	if errors.Is(err, ErrSetupAlreadyDone) {
		http.Error(w, "admin account already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("setup failed: %s", err)
		http.Error(w, "setup failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterAdminSetups.Inc()
	log.Tracef("admin account [%s] created", admin.Username)

	handler.writeTokenResponse(w, "admin account created", token, admin, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	admin, token, err := handler.service.Login(r.Context(), loginReq.Username, loginReq.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		log.Tracef("failed login attempt for user: %s", loginReq.Username)
		handler.metricsManager.CounterLoginsFailed.Inc()
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("login failed: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterLogins.Inc()

	handler.writeTokenResponse(w, "logged in", token, admin, http.StatusOK)
}

func (handler *Handler) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		// auth middleware puts the identity in the context for all
		// protected routes; reaching this means the route got exposed
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var changeReq changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		log.Errorf("change password, unmarshal json params: %s", err)
		http.Error(w, "change password failed", http.StatusBadRequest)
		return
	}

	err := handler.service.ChangePassword(r.Context(), identity, changeReq.CurrentPassword, changeReq.NewPassword)
	switch {
	case errors.Is(err, ErrAdminNotFound):
		http.Error(w, "admin not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrWrongPassword):
		http.Error(w, "wrong current password", http.StatusBadRequest)
		return
	case errors.Is(err, ErrPasswordTooShort):
		http.Error(w, "new password too short, min 6 characters", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("change password failed: %s", err)
		http.Error(w, "change password failed", http.StatusInternalServerError)
		return
	}

	log.Tracef("admin [%s] changed password", identity.Username)

	resp, err := json.Marshal(messageResponse{Message: "password changed"})
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resp)
}

func (handler *Handler) writeTokenResponse(w http.ResponseWriter, message, token string, admin *Admin, statusCode int) {
	resp, err := json.Marshal(tokenResponse{
		Message: message,
		Token:   token,
		Admin: adminInfo{
			ID:       admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
		},
	})
	if err != nil {
		log.Errorf("marshal token response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, statusCode)
}
