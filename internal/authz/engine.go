package authz

import (
	"erp-system/internal/workflow"
)

type Context struct {
	ActorID     uint64
	Permissions map[string]bool
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

// CanDo - RBAC-проверка. Superuser может всё, пустое право не даётся никому.
func CanDo(permission string, ctx Context) bool {
	if permission == "" {
		return false
	}
	if ctx.HasPermission(Superuser) {
		return true
	}
	return ctx.HasPermission(permission)
}

// FilterActions оставляет только те действия, на которые у пользователя есть права.
func FilterActions(documentType workflow.DocumentType, actions []workflow.Action, ctx Context) []workflow.Action {
	allowed := make([]workflow.Action, 0, len(actions))
	for _, a := range actions {
		if CanDo(ActionPermission(documentType, a), ctx) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

// PermissionsToMap - []string из БД/кеша в map для быстрых проверок.
func PermissionsToMap(perms []string) map[string]bool {
	m := make(map[string]bool, len(perms))
	for _, p := range perms {
		m[p] = true
	}
	return m
}
