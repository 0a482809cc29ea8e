package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/futliga/championship-system/services"
)

type jsonResponse map[string]interface{}

// Логгер пакета; проставляется из main при старте.
var logger = slog.Default()

func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

func getIDFromURL(r *http.Request, param string) (int, error) {
	idStr := chi.URLParam(r, param)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter: %q", param, idStr)
	}
	return id, nil
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: dst не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		logger.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func unprocessableResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	// Не найдено
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrChampionshipNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrStandingNotFound):
		notFoundResponse(w, r)

	// Конфликты
	case errors.Is(err, services.ErrAuthEmailTaken),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrTeamAlreadyEnrolled),
		errors.Is(err, services.ErrMatchAlreadyFinalized):
		conflictResponse(w, r, err.Error())

	// Невалидные данные / бизнес-правила
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrTeamNotEnrolled),
		errors.Is(err, services.ErrMatchSameTeams),
		errors.Is(err, services.ErrMatchStatusInvalid),
		errors.Is(err, services.ErrMatchStatusTransitionInvalid),
		errors.Is(err, services.ErrMatchFinishedViaUpdate),
		errors.Is(err, services.ErrChampionshipStatusInvalid),
		errors.Is(err, services.ErrChampionshipDatesInvalid),
		errors.Is(err, services.ErrDateFormatInvalid),
		errors.Is(err, services.ErrFixturesNotEnoughTeams),
		errors.Is(err, services.ErrLogoContentTypeInvalid):
		badRequestResponse(w, r, err)

	// Ошибки валидации событий — 422, тело разобрали, но поля не сходятся
	case errors.Is(err, services.ErrEventTypeInvalid),
		errors.Is(err, services.ErrEventMinuteInvalid),
		errors.Is(err, services.ErrEventTeamRequired),
		errors.Is(err, services.ErrEventTeamNotInMatch),
		errors.Is(err, services.ErrEventPlayerRequired),
		errors.Is(err, services.ErrEventSubstitutionFields):
		unprocessableResponse(w, r, err)

	// Аутентификация и доступ
	case errors.Is(err, services.ErrAuthInvalidCredentials):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation):
		errorResponse(w, r, http.StatusForbidden, err.Error())

	// Хранилище логотипов не настроено
	case errors.Is(err, services.ErrLogoStorageUnavailable):
		errorResponse(w, r, http.StatusServiceUnavailable, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
