package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = errors.New("неверный метод подписи токена")
	ErrInvalidToken         = errors.New("недопустимый токен")
	ErrTokenExpired         = errors.New("срок действия токена истёк")
	ErrTokenNotYetValid     = errors.New("токен ещё не активен")
	ErrTokenIsNotRefresh    = errors.New("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = errors.New("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = errors.New("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = errors.New("неверный формат заголовка авторизации")
	ErrInvalidCredentials = errors.New("неверные учётные данные")
	ErrUnauthorized       = errors.New("неавторизован")
	ErrForbidden          = errors.New("доступ запрещён")
	ErrUserDisabled       = errors.New("пользователь заблокирован")

	// Контекст
	ErrUserIDNotFoundInContext = errors.New("UserID не найден в контексте запроса")

	// Документооборот
	ErrInvalidTransition   = errors.New("недопустимый переход статуса")
	ErrUnknownDocumentType = errors.New("неизвестный тип документа")
	ErrEmptyDocumentLines  = errors.New("документ должен содержать хотя бы одну позицию")

	// Общие
	ErrNotFound       = errors.New("запись не найдена")
	ErrBadRequest     = errors.New("неверный запрос")
	ErrConflict       = errors.New("запись уже существует")
	ErrInternalServer = errors.New("внутренняя ошибка сервера")
)

// InvalidInputError - ошибка бизнес-валидации входных данных (400).
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError описывает отклонённую смену статуса документа
// или действие, недоступное в текущем статусе (тогда заполнено Action, а To пуст).
type InvalidTransitionError struct {
	DocumentType string
	From         string
	To           string
	Action       string
}

func (e *InvalidTransitionError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s: действие %s недоступно в статусе %s (%s)", ErrInvalidTransition.Error(), e.Action, e.From, e.DocumentType)
	}
	return fmt.Sprintf("%s: %s -> %s (%s)", ErrInvalidTransition.Error(), e.From, e.To, e.DocumentType)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func NewInvalidTransitionError(documentType, from, to string) error {
	return &InvalidTransitionError{DocumentType: documentType, From: from, To: to}
}

func NewUnavailableActionError(documentType, from, action string) error {
	return &InvalidTransitionError{DocumentType: documentType, From: from, Action: action}
}

// HttpError - ошибка, которую контроллер отдаёт клиенту как есть.
// Err и Context пишутся только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: context}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: 400, Message: message, Err: ErrBadRequest}
}
