// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-job-tracker/internal/app"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

const jobIDParam = "id"

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.JobService.ListJobs(r.Context(), userID, listJobsQueryFromRequest(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewJobListResponse(page), http.StatusOK)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.GetJob(r.Context(), userID, chi.URLParam(r, jobIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.JobResponse{
		Envelope: models.Envelope{Success: true},
		Data:     &job,
	}, http.StatusOK)
}

// createJob accepts JSON or multipart form data. Files stored for a rejected
// request are discarded.
func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, refs, err := h.readJobRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.CreateJob(ctx, userID, input, refs...)
	if err != nil {
		h.discardUploads(ctx, refs)
		writeError(w, r, err)
		return
	}

	log.Info().Str("job_id", job.ID).Msg("job created")

	utils.WriteJSON(w, models.JobResponse{
		Envelope: models.Envelope{Success: true, Message: app.MsgJobCreated},
		Data:     &job,
	}, http.StatusCreated)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	input, refs, err := h.readJobRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	job, err := h.services.JobService.UpdateJob(ctx, userID, chi.URLParam(r, jobIDParam), input, refs...)
	if err != nil {
		h.discardUploads(ctx, refs)
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.JobResponse{
		Envelope: models.Envelope{Success: true, Message: app.MsgJobUpdated},
		Data:     &job,
	}, http.StatusOK)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.JobService.DeleteJob(r.Context(), userID, chi.URLParam(r, jobIDParam)); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.Envelope{Success: true, Message: app.MsgJobDeleted}, http.StatusOK)
}
