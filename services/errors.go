package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrChampionshipNotFound = errors.New("championship not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrStandingNotFound     = errors.New("standing not found for team in championship")

	// Ошибки конфликтов
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrTeamAlreadyEnrolled = errors.New("team is already enrolled in this championship")
	ErrTeamNotEnrolled     = errors.New("team is not enrolled in this championship")

	// Журнал событий матча. Счёт и standings финализированного матча
	// неизменяемы: повторный FULL_TIME и поздние голы отклоняются,
	// иначе результат сложился бы в таблицу дважды.
	ErrMatchAlreadyFinalized = errors.New("match has already been finalized")

	// Ошибки валидации событий
	ErrEventTypeInvalid        = errors.New("invalid match event type")
	ErrEventMinuteInvalid      = errors.New("event minute must be between 0 and 130")
	ErrEventTeamRequired       = errors.New("event requires a team reference")
	ErrEventTeamNotInMatch     = errors.New("event team is not playing in this match")
	ErrEventPlayerRequired     = errors.New("event requires a player reference")
	ErrEventSubstitutionFields = errors.New("substitution requires distinct incoming and outgoing players")

	// Ошибки валидации матчей и чемпионатов
	ErrMatchSameTeams               = errors.New("home and away teams must differ")
	ErrMatchStatusInvalid           = errors.New("invalid match status provided")
	ErrMatchStatusTransitionInvalid = errors.New("invalid match status transition")
	ErrMatchFinishedViaUpdate       = errors.New("matches are finished by recording a FULL_TIME event, not by direct status update")
	ErrChampionshipStatusInvalid    = errors.New("invalid championship status provided")
	ErrChampionshipDatesInvalid     = errors.New("championship end date must be after start date")
	ErrDateFormatInvalid            = errors.New("date must be in RFC3339 format")
	ErrFixturesNotEnoughTeams       = errors.New("at least two enrolled teams are required to generate fixtures")

	// Загрузка логотипов
	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
	ErrLogoContentTypeInvalid = errors.New("unsupported logo content type")
)
