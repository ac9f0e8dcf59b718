package services

import (
	"github.com/rafabene/avantpro-backoffice/internal/domain/entities"
	"github.com/rafabene/avantpro-backoffice/internal/domain/errors"
)

// Quem não é admin só repassa concessões que já possui e nunca cria nem altera admins.

func authorizeRole(actor *entities.User, role entities.Role) error {
	if actor == nil {
		return errors.ErrForbidden
	}
	if role == entities.RoleAdmin && !actor.IsAdmin() {
		return errors.ErrForbidden
	}
	return nil
}

func authorizeGrant(actor *entities.User, p entities.UserPermission) error {
	if actor == nil {
		return errors.ErrForbidden
	}
	if actor.IsAdmin() {
		return nil
	}
	for _, held := range actor.Permissions {
		if held == p {
			return nil
		}
	}
	return errors.ErrForbidden
}

func authorizeTarget(actor, target *entities.User) error {
	if actor == nil {
		return errors.ErrForbidden
	}
	if target.IsAdmin() && !actor.IsAdmin() {
		return errors.ErrForbidden
	}
	return nil
}
