package service

import (
	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"

	"github.com/google/uuid"
)

// Action is an operation an actor can attempt on a resource.
type Action string

const (
	ActionManageProduct  Action = "product:manage"  // create, edit, restock, deactivate
	ActionViewStoreData  Action = "store:view"      // dashboard, sales, alerts, settings
	ActionViewPurchase   Action = "purchase:view"   // read a purchase record
	ActionRecordPurchase Action = "purchase:record" // create a purchase
)

// Authorize is the single policy-evaluation function for role-based access.
// Every handler and usecase funnels its permission checks through here
// instead of re-implementing them ad hoc per endpoint.
//
// The rules: administrators act only on resources their own account owns;
// customers may record purchases and read their own purchase records.
// Returns nil when allowed, a typed AppError otherwise.
func Authorize(roles entity.Roles, actorID, ownerID uuid.UUID, action Action) error {
	switch action {
	case ActionManageProduct, ActionViewStoreData:
		if !roles.Contains(entity.RoleAdmin) {
			return domainerrors.ErrForbidden.WrapMessage("administrator role required")
		}
		if actorID != ownerID {
			return domainerrors.ErrProductOwnershipViolation.WrapMessage("resource owned by another store")
		}

		return nil

	case ActionRecordPurchase:
		if !roles.Contains(entity.RoleCustomer) {
			return domainerrors.ErrForbidden.WrapMessage("customer role required")
		}

		return nil

	case ActionViewPurchase:
		// A purchase is visible to the purchasing customer and to the
		// store it was recorded at; ownerID carries whichever party the
		// caller resolved.
		if actorID != ownerID {
			return domainerrors.ErrForbidden.WrapMessage("purchase belongs to another account")
		}

		return nil

	default:
		return domainerrors.ErrForbidden.WrapMessage("unknown action")
	}
}
