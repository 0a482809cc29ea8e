package handlers

import (
	"fmt"
	"net/http"

	"github.com/futliga/championship-system/middleware"
	"github.com/futliga/championship-system/models"
	"github.com/futliga/championship-system/services"
)

type ChampionshipHandler struct {
	championshipService services.ChampionshipService
	matchService        services.MatchService
}

func NewChampionshipHandler(
	championshipService services.ChampionshipService,
	matchService services.MatchService,
) *ChampionshipHandler {
	return &ChampionshipHandler{
		championshipService: championshipService,
		matchService:        matchService,
	}
}

func (h *ChampionshipHandler) CreateChampionship(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var input services.CreateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.CreateChampionship(r.Context(), currentUserID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetChampionshipByID(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.GetChampionshipByID(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListChampionships поддерживает фильтр ?status=ACTIVE.
func (h *ChampionshipHandler) ListChampionships(w http.ResponseWriter, r *http.Request) {
	var status *models.ChampionshipStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := models.ChampionshipStatus(statusStr)
		status = &s
	}

	championships, err := h.championshipService.ListChampionships(r.Context(), status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championships": championships}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) UpdateChampionship(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateChampionshipInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	championship, err := h.championshipService.UpdateChampionship(r.Context(), championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"championship": championship}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) DeleteChampionship(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.DeleteChampionship(r.Context(), championshipID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChampionshipHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 {
		badRequestResponse(w, r, fmt.Errorf("invalid team_id: %d", input.TeamID))
		return
	}

	if err := h.championshipService.AddTeam(r.Context(), championshipID, input.TeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"enrolled": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.championshipService.RemoveTeam(r.Context(), championshipID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChampionshipHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.championshipService.ListTeams(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListMatchesByChampionship(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.championshipService.GenerateFixtures(r.Context(), championshipID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
