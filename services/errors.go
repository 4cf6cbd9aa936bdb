package services

import "errors"

// Shared sentinel errors used across services and the HTTP mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")

	// Tournament lifecycle
	ErrRegistrationNotOpen   = errors.New("tournament registration is not open")
	ErrTournamentFull        = errors.New("tournament roster is full")
	ErrTournamentNotActive   = errors.New("tournament is not active")
	ErrInvalidDateRange      = errors.New("tournament end date must be after start date")
	ErrInvalidCapacity       = errors.New("tournament max players must be positive")
	ErrInvalidFormat         = errors.New("unknown tournament format")
	ErrCustomNeedsPhases     = errors.New("custom format requires at least one phase")
	ErrPhaseNotInTournament  = errors.New("phase does not belong to this tournament")
	ErrInvalidStatusChange   = errors.New("invalid tournament status transition")
	ErrRosterTooSmall        = errors.New("not enough registered players to generate a draw")
	ErrBracketAlreadyExists  = errors.New("phase already has a generated draw")
	ErrBracketNotGenerated   = errors.New("phase has no generated draw")
	ErrRoundInProgress       = errors.New("current round is not finished yet")
	ErrFormatHasNoBracket    = errors.New("format does not use a generated draw")

	// Matches and score reporting
	ErrMatchNotPlayable       = errors.New("match cannot accept a result in its current state")
	ErrMatchMissingPlayers    = errors.New("match sides are not determined yet")
	ErrScoreIncomplete        = errors.New("score does not decide the match")
	ErrCorrectionNotAllowed   = errors.New("completed match can only be corrected by the organizer")
	ErrCorrectionLocked       = errors.New("result is locked by later bracket matches")
	ErrChallengeOutOfRange    = errors.New("challenge exceeds the allowed ladder range")
	ErrPlayerNotOnRoster      = errors.New("player is not on the tournament roster")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists for this organizer")
	ErrRegistrationConflict   = errors.New("player is already registered for this tournament")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrOrganizerOnly        = errors.New("only the tournament organizer can perform this action")

	// Entity-specific not-found variants; more context than the plain
	// ErrNotFound where a handler wants it.
	ErrUserNotFound       = errors.New("user not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPhaseNotFound      = errors.New("phase not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Storage
	ErrPhotoStorageUnavailable = errors.New("photo storage is not configured")
	ErrUnsupportedImageType    = errors.New("unsupported image content type")
)
