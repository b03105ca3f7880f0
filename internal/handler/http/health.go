package http

import (
	"net/http"

	"github.com/MKhiriev/go-job-tracker/internal/app"
	"github.com/MKhiriev/go-job-tracker/internal/utils"
	"github.com/MKhiriev/go-job-tracker/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Envelope: models.Envelope{Success: true},
		Version:  h.services.AppInfoService.GetAppVersion(r.Context()),
	}, http.StatusOK)
}

func (h *Handler) routeNotFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.Envelope{
		Success:   false,
		Message:   app.MsgRouteNotFound,
		ErrorKind: KindNotFound,
	}, http.StatusNotFound)
}
