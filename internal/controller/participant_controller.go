// internal/controller/participant_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/service"
)

type ParticipantController struct {
	ParticipantService *service.ParticipantService
}

func (c *ParticipantController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TelegramChatID int64  `json:"telegram_chat_id"`
		Handle         string `json:"handle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	p, err := c.ParticipantService.Register(body.TelegramChatID, body.Handle)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(p)
}

func (c *ParticipantController) VerifyHandle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	verified, err := c.ParticipantService.VerifyHandle(id, body.Code)
	if err != nil {
		var notFound *appErrors.ErrParticipantNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"participant_id": id, "verified": verified})
}

func (c *ParticipantController) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	var body struct {
		Label             string   `json:"label"`
		SpendingPower     string   `json:"spending_power"`
		AuthenticityScore int      `json:"authenticity_score"`
		RecommendedTypes  []string `json:"recommended_types"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := c.ParticipantService.CompleteProfile(id, body.Label, body.SpendingPower, body.AuthenticityScore, body.RecommendedTypes); err != nil {
		var notFound *appErrors.ErrParticipantNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"participant_id": id, "profile_completed": true})
}

func (c *ParticipantController) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid participant id", http.StatusBadRequest)
		return
	}

	if err := c.ParticipantService.Deactivate(id); err != nil {
		var notFound *appErrors.ErrParticipantNotFound
		if errors.As(err, &notFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"participant_id": id, "active": false})
}
