package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации (до любого обращения к БД)
	ErrDuplicateIDs         = errors.New("list contains duplicate ids")
	ErrOwnerCountOutOfRange = errors.New("owner count must be between 1 and 100")
	ErrUnknownUser          = errors.New("one or more users do not exist")
	ErrTeamNameTooLong      = errors.New("team name is too long")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrUsernameRequired     = errors.New("username is required")

	// Бизнес-правила регистрации команд
	ErrRegistrationNotOpen = errors.New("tournament registration is not open")
	ErrAlreadyRegistered   = errors.New("user is already registered in this tournament")
	ErrTeamFull            = errors.New("team is full")
	ErrOwnerCannotLeave    = errors.New("team owner cannot leave the team, delete it instead")
	ErrNotTeamMember       = errors.New("user is not a member of this team")

	// Конфликты
	ErrUsernameConflict     = errors.New("username is already in use")
	ErrInviteCodeGeneration = errors.New("failed to generate unique invite code")

	// Аутентификация и авторизация
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrTeamOwnerOnly          = errors.New("only the team owner can perform this action")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrBadgeNotFound      = errors.New("badge not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")

	// Хранилище файлов
	ErrStorageDisabled     = errors.New("file storage is not configured")
	ErrUnsupportedFileType = errors.New("unsupported image content type")
)
