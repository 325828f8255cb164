package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/usecase"
	"github.com/sheqworks/themis/pkg/utils/errutil"
)

// handleUseCaseError maps use case sentinels onto HTTP status codes
func handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, usecase.ErrAssessmentNotFound),
		errors.Is(err, usecase.ErrObligationNotFound),
		errors.Is(err, usecase.ErrSummaryNotComputed):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrAssessmentCompleted),
		errors.Is(err, usecase.ErrInvalidStatus):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrInvalidAnswer),
		errors.Is(err, usecase.ErrFieldNotAllowed):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	errutil.HandleHTTP(r.Context(), w, err, status)
}

func assessmentIDFromRequest(r *http.Request) types.AssessmentID {
	return types.AssessmentID(chi.URLParam(r, "assessmentID"))
}

type createAssessmentRequest struct {
	CompanyID types.CompanyID `json:"company_id"`
	Profile   *model.Profile  `json:"profile"`
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.Profile == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("profile is required"), http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Assessment.CreateAssessment(r.Context(), req.CompanyID, req.Profile)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusCreated, assessment)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	companyID := types.CompanyID(r.URL.Query().Get("company_id"))
	if companyID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("company_id query parameter is required"), http.StatusBadRequest)
		return
	}

	assessments, err := s.uc.Assessment.ListAssessments(r.Context(), companyID)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"assessments": assessments})
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.uc.Assessment.GetAssessment(r.Context(), assessmentIDFromRequest(r))
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}

// updateAssessment applies a PATCH. Clients may write only the profile and
// status fields; scope, answers and the gap summary change through the
// legal-mapping, answer and gap-analysis endpoints instead.
func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	// Decode to raw fields first so unknown keys are rejected rather than
	// silently dropped
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	if err := usecase.ValidatePatchFields(keys); err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	var patch usecase.AssessmentPatch
	for key, raw := range fields {
		var err error
		switch key {
		case "profile":
			err = json.Unmarshal(raw, &patch.Profile)
		case "status":
			err = json.Unmarshal(raw, &patch.Status)
		}
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid patch value", goerr.V("field", key)), http.StatusBadRequest)
			return
		}
	}

	assessment, err := s.uc.Assessment.UpdateAssessment(r.Context(), assessmentIDFromRequest(r), &patch)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) runLegalMapping(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.uc.Assessment.RunLegalMapping(r.Context(), assessmentIDFromRequest(r))
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) getChecklist(w http.ResponseWriter, r *http.Request) {
	checklist, err := s.uc.Assessment.GetChecklist(r.Context(), assessmentIDFromRequest(r))
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, checklist)
}

type submitAnswerRequest struct {
	ObligationID types.ObligationID     `json:"obligation_id"`
	Status       types.ComplianceStatus `json:"status"`
	Note         string                 `json:"note,omitempty"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if req.ObligationID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("obligation_id is required"), http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Assessment.SubmitAnswer(r.Context(), assessmentIDFromRequest(r), req.ObligationID, req.Status, req.Note)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) runGapAnalysis(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.uc.Assessment.RunGapAnalysis(r.Context(), assessmentIDFromRequest(r))
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, assessment)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Assessment.GetSummary(r.Context(), assessmentIDFromRequest(r))
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, summary)
}
