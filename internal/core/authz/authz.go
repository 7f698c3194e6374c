// Package authz holds the single authorization policy applied to every
// project route. It performs no I/O: callers resolve ownership and pass it in.
package authz

import (
	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

// Action is an operation requested on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Reason explains a denial.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnauthenticated  Reason = "Unauthenticated"
	ReasonInsufficientRole Reason = "InsufficientRole"
	ReasonNotOwner         Reason = "NotOwner"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var (
	allow            = Decision{Allowed: true}
	denyUnauthed     = Decision{Reason: ReasonUnauthenticated}
	denyInsufficient = Decision{Reason: ReasonInsufficientRole}
	denyNotOwner     = Decision{Reason: ReasonNotOwner}
)

// Err maps a denial onto the domain error taxonomy. It returns nil when the
// decision allows the action.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonNotOwner:
		return domain.ErrNotOwner
	default:
		return domain.ErrInsufficientRole
	}
}

// Decide evaluates role × action × ownership.
//
//	Me, Admin  everything
//	User       create, read; update/delete only when isOwner
//	Customer   read only
//
// Unknown roles and actions are denied with ReasonInsufficientRole.
// isOwner is only consulted for update and delete by the User role.
func Decide(role domain.Role, action Action, isOwner bool) Decision {
	if !knownAction(action) {
		return denyInsufficient
	}

	switch role {
	case domain.RoleMe, domain.RoleAdmin:
		return allow
	case domain.RoleUser:
		switch action {
		case ActionCreate, ActionRead:
			return allow
		default:
			if isOwner {
				return allow
			}
			return denyNotOwner
		}
	case domain.RoleCustomer:
		if action == ActionRead {
			return allow
		}
		return denyInsufficient
	default:
		return denyInsufficient
	}
}

// Authorize is Decide for a possibly absent caller: a nil principal is
// denied with ReasonUnauthenticated before the role is looked at.
func Authorize(p *domain.Principal, action Action, isOwner bool) Decision {
	if p == nil || p.UserID == "" {
		return denyUnauthed
	}
	return Decide(p.Role, action, isOwner)
}

func knownAction(a Action) bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}
