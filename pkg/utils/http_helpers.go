package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "erp-system/pkg/errors"
	"erp-system/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func ParseFilterFromQuery(values url.Values) types.Filter {
	filterReq := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Page:   1,
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				filterReq.Limit = MaxLimit
			} else {
				filterReq.Limit = l
			}
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filterReq.Page = p
		}
	}

	if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filterReq.Offset = o
		}
	} else {
		filterReq.Offset = (filterReq.Page - 1) * filterReq.Limit
	}

	filterReq.WithPagination = values.Get("withPagination") != "false"

	for key, vals := range values {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}

		if key == "search" {
			filterReq.Search = vals[0]
			continue
		}

		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			field := key[5 : len(key)-1]
			direction := strings.ToLower(vals[0])
			if direction == "asc" || direction == "desc" {
				filterReq.Sort[field] = direction
			}
			continue
		}

		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			field := key[7 : len(key)-1]
			filterReq.Filter[field] = strings.Join(vals, ",")
		}
	}

	return filterReq
}

// BuildPagination считает количество страниц с округлением вверх.
func BuildPagination(total uint64, page, limit int) types.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return types.Pagination{TotalCount: total, Page: page, Limit: limit, TotalPages: totalPages}
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HTTPResponse{Status: true, Message: message}
	withPagination, _ := strconv.ParseBool(ctx.QueryParam("withPagination"))
	if withPagination && len(total) > 0 {
		filter := ParseFilterFromQuery(ctx.Request().URL.Query())
		response.Body = map[string]interface{}{
			"list":       body,
			"pagination": BuildPagination(total[0], filter.Page, filter.Limit),
		}
	} else {
		response.Body = body
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит доменные ошибки в HTTP-ответ.
// Неизвестные ошибки пишутся в лог и отдаются клиенту как 500 без подробностей.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return writeError(c, httpErr.Code, httpErr.Message, httpErr.Details)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return writeError(c, http.StatusBadRequest, "Ошибка валидации: "+strings.Join(msgs, "; "), nil)
	}

	var transitionErr *apperrors.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		details := map[string]string{
			"document_type": transitionErr.DocumentType,
			"from":          transitionErr.From,
		}
		if transitionErr.Action != "" {
			details["action"] = transitionErr.Action
		} else {
			details["to"] = transitionErr.To
		}
		return writeError(c, http.StatusConflict, transitionErr.Error(), details)
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return writeError(c, http.StatusBadRequest, inputErr.Message, nil)
	}

	if code, ok := statusForError(err); ok {
		return writeError(c, code, rootMessage(err), nil)
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return writeError(c, http.StatusInternalServerError, "Внутренняя ошибка сервера", nil)
}

var errorStatuses = []struct {
	err  error
	code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrInvalidTransition, http.StatusConflict},
	{apperrors.ErrConflict, http.StatusConflict},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrUserDisabled, http.StatusForbidden},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrTokenNotYetValid, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrUserIDNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrUnknownDocumentType, http.StatusBadRequest},
	{apperrors.ErrEmptyDocumentLines, http.StatusBadRequest},
}

func statusForError(err error) (int, bool) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.code, true
		}
	}
	return 0, false
}

// rootMessage возвращает текст сигнальной ошибки без обёрток с технической информацией.
func rootMessage(err error) string {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.err.Error()
		}
	}
	return err.Error()
}

func writeError(c echo.Context, code int, message string, details interface{}) error {
	response := map[string]interface{}{
		"status":  false,
		"message": message,
	}
	if details != nil {
		response["body"] = details
	}
	return c.JSON(code, response)
}
