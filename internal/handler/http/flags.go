// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/utils"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

var (
	errUserRequired = errors.New("query parameter `user` is required")
	errInvalidBody  = errors.New("invalid JSON was passed")
)

// reserved query parameters; every other parameter is a custom property
const (
	queryUser = "user"
	queryName = "name"
)

// userFromQuery builds a user from ?user=<key>&name=<name>&<prop>=<value>.
func userFromQuery(r *http.Request) (models.User, error) {
	query := r.URL.Query()
	key := query.Get(queryUser)
	if key == "" {
		return models.User{}, errUserRequired
	}

	b := models.NewUserBuilder(key).Name(query.Get(queryName))
	for prop, values := range query {
		if prop == queryUser || prop == queryName || len(values) == 0 {
			continue
		}
		b.Custom(prop, values[0])
	}
	return b.Build(), nil
}

func (h *Handler) allFlags(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, err := userFromQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.allFlags").Msg("bad user")
		utils.WriteError(w, statusFromError(err), err)
		return
	}

	states := h.client.AllLatestFlagsVariations(user)
	if states == nil {
		states = []models.FlagState{}
	}
	writeJSON(w, r, http.StatusOK, states)
}

type flagResponse struct {
	Key string `json:"key"`
	models.EvalDetail[string]
}

func (h *Handler) flag(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	key := chi.URLParam(r, "key")

	user, err := userFromQuery(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.flag").Msg("bad user")
		utils.WriteError(w, statusFromError(err), err)
		return
	}

	detail := h.client.StringVariationDetail(key, user, "")
	status := http.StatusOK
	if detail.Reason == models.ReasonFlagNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, r, status, flagResponse{Key: key, EvalDetail: detail})
}

type trackRequest struct {
	User  models.EventUser `json:"user"`
	Event string           `json:"event"`
	// Value defaults to 1.
	Value *float64 `json:"value,omitempty"`
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.track").Msg("invalid JSON was passed")
		utils.WriteError(w, statusFromError(errInvalidBody), errInvalidBody)
		return
	}

	b := models.NewUserBuilder(req.User.KeyID).Name(req.User.Name)
	for _, p := range req.User.CustomizedProperties {
		b.Custom(p.Name, p.Value)
	}

	value := 1.0
	if req.Value != nil {
		value = *req.Value
	}

	if err := h.client.TrackNumeric(b.Build(), req.Event, value); err != nil {
		log.Err(err).Str("func", "*Handler.track").Msg("error tracking event")
		utils.WriteError(w, statusFromError(err), err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) flush(w http.ResponseWriter, _ *http.Request) {
	h.client.Flush()
	w.WriteHeader(http.StatusAccepted)
}

type statusResponse struct {
	Initialized bool `json:"initialized"`
	models.AppBuildInfo
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, statusResponse{
		Initialized:  h.client.Initialized(),
		AppBuildInfo: h.buildInfo,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := utils.WriteJSON(w, status, v); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
