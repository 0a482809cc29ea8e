package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/futliga/championship-system/services"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(statisticsService services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.statisticsService.GetStandings(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetTopScorers поддерживает ?limit=N; по умолчанию отдаётся двадцатка.
func (h *StatisticsHandler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid limit parameter: %q", limitStr))
			return
		}
	}

	scorers, err := h.statisticsService.GetTopScorers(r.Context(), championshipID, limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorers": scorers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatisticsHandler) GetCardTally(w http.ResponseWriter, r *http.Request) {
	championshipID, err := getIDFromURL(r, "championshipID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tally, err := h.statisticsService.GetCardTally(r.Context(), championshipID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"cards": tally}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
