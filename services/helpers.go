package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/futliga/championship-system/models"
)

// isValidMatchStatusTransition описывает машину состояний матча.
// FINISHED достижим только через событие FULL_TIME (см. MatchService),
// поэтому прямых переходов в FINISHED здесь нет.
func isValidMatchStatusTransition(current, next models.MatchStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.MatchStatus][]models.MatchStatus{
		models.MatchScheduled:  {models.MatchLive, models.MatchFirstHalf, models.MatchSuspended, models.MatchCancelled},
		models.MatchLive:       {models.MatchFirstHalf, models.MatchHalfTime, models.MatchSecondHalf, models.MatchSuspended, models.MatchCancelled},
		models.MatchFirstHalf:  {models.MatchHalfTime, models.MatchSuspended, models.MatchCancelled},
		models.MatchHalfTime:   {models.MatchSecondHalf, models.MatchSuspended, models.MatchCancelled},
		models.MatchSecondHalf: {models.MatchSuspended, models.MatchCancelled},
		models.MatchSuspended:  {models.MatchScheduled, models.MatchLive, models.MatchFirstHalf, models.MatchHalfTime, models.MatchSecondHalf, models.MatchCancelled},
		models.MatchFinished:   {},
		models.MatchCancelled:  {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func parseRFC3339(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormatInvalid, value)
	}
	return t, nil
}

func validateChampionshipDates(start time.Time, end *time.Time) error {
	if end != nil && !start.Before(*end) {
		return fmt.Errorf("%w: start date (%s) must be before end date (%s)",
			ErrChampionshipDatesInvalid, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// GetExtensionFromContentType возвращает расширение файла для логотипа.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %q", ErrLogoContentTypeInvalid, contentType)
	}
}
