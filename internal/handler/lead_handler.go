package handler

import (
	"net/http"

	"adastra/internal/domain"
	"adastra/internal/utils"
)

const failedSubmit = "Failed to submit. Please try again."

func (h *Handler) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req domain.NewsletterSubscription
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.leads.SubscribeNewsletter(r.Context(), req); err != nil {
		writeServiceError(w, err, "Failed to subscribe. Please try again.")
		return
	}
	utils.WriteSuccess(w, "Subscribed successfully")
}

func (h *Handler) handleContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactSubmission
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.leads.SubmitContact(r.Context(), req); err != nil {
		writeServiceError(w, err, failedSubmit)
		return
	}
	utils.WriteSuccess(w, "Contact form submitted successfully")
}

func (h *Handler) handleCV(w http.ResponseWriter, r *http.Request) {
	var req domain.CVSubmission
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.leads.SubmitCV(r.Context(), req); err != nil {
		writeServiceError(w, err, failedSubmit)
		return
	}
	utils.WriteSuccess(w, "CV submitted successfully")
}

func (h *Handler) handleConsultation(w http.ResponseWriter, r *http.Request) {
	var req domain.ConsultationRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.leads.RequestConsultation(r.Context(), req); err != nil {
		writeServiceError(w, err, failedSubmit)
		return
	}
	utils.WriteSuccess(w, "Consultation request submitted successfully")
}
