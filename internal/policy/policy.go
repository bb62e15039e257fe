// Package policy is the order lifecycle state machine: which actor may
// move an order from which status into which status, and the UI-facing
// capability flags derived from (actor, status). Pure functions only;
// the transition service owns orchestration and remote calls.
package policy

import "quanan/internal/models"

// allowedTransitions maps actor role -> current status -> reachable
// statuses. Anything absent here is rejected.
var allowedTransitions = map[models.Role]map[models.OrderStatus]map[models.OrderStatus]bool{
	models.RoleCustomer: {
		models.StatusCreating: {
			models.StatusPlaced:    true,
			models.StatusCancelled: true,
		},
		models.StatusPlaced: {
			models.StatusCancelled: true,
		},
		models.StatusPreparing: {
			models.StatusCancelled: true,
		},
		models.StatusDelivered: {
			models.StatusReceived: true,
		},
	},
	models.RoleShop: {
		models.StatusPlaced: {
			models.StatusPreparing: true,
			models.StatusCancelled: true,
		},
		models.StatusPreparing: {
			models.StatusDelivering: true,
			models.StatusCancelled:  true,
		},
		models.StatusDelivering: {
			models.StatusDelivered: true,
			models.StatusCancelled: true,
		},
	},
}

// statusOrder fixes a stable listing order for NextStatuses.
var statusOrder = []models.OrderStatus{
	models.StatusCreating,
	models.StatusPlaced,
	models.StatusPreparing,
	models.StatusDelivering,
	models.StatusDelivered,
	models.StatusReceived,
	models.StatusCancelled,
}

// CanTransition reports whether role may move an order from one status
// to another. The >= 1 item precondition on creating -> placed is the
// transition service's concern; the table here is purely structural.
func CanTransition(role models.Role, from, to models.OrderStatus) bool {
	return allowedTransitions[role][from][to]
}

// Check validates a requested transition and returns a typed
// TransitionError when it is not permitted.
func Check(role models.Role, from, to models.OrderStatus) error {
	if !CanTransition(role, from, to) {
		return &models.TransitionError{Role: role, From: from, To: to}
	}
	return nil
}

// NextStatuses lists the statuses role may move an order into from the
// given status, in lifecycle order. Empty for terminal statuses.
func NextStatuses(role models.Role, from models.OrderStatus) []models.OrderStatus {
	reachable := allowedTransitions[role][from]
	if len(reachable) == 0 {
		return nil
	}
	next := make([]models.OrderStatus, 0, len(reachable))
	for _, status := range statusOrder {
		if reachable[status] {
			next = append(next, status)
		}
	}
	return next
}

// Capabilities are the action affordances the display layer derives
// its buttons from. Each flag corresponds to one transition (or, for
// CanEdit/CanRate, to an orthogonal mutation) permitted for the actor
// at the order's current status.
type Capabilities struct {
	CanEdit          bool `json:"canEdit"`
	CanPlace         bool `json:"canPlace"`
	CanConfirm       bool `json:"canConfirm"`
	CanCancel        bool `json:"canCancel"`
	CanDeliver       bool `json:"canDeliver"`
	CanMarkDelivered bool `json:"canMarkDelivered"`
	CanReceive       bool `json:"canReceive"`
	CanRate          bool `json:"canRate"`
}

// CapabilitiesFor derives the capability flags for an actor role and an
// order status. Rating requires the terminal success status "received";
// the "completed" label that appeared in one screen of the source app is
// not part of the lifecycle.
func CapabilitiesFor(role models.Role, status models.OrderStatus) Capabilities {
	return Capabilities{
		CanEdit:          role == models.RoleCustomer && status == models.StatusCreating,
		CanPlace:         CanTransition(role, status, models.StatusPlaced),
		CanConfirm:       role == models.RoleShop && CanTransition(role, status, models.StatusPreparing),
		CanCancel:        CanTransition(role, status, models.StatusCancelled),
		CanDeliver:       role == models.RoleShop && CanTransition(role, status, models.StatusDelivering),
		CanMarkDelivered: role == models.RoleShop && CanTransition(role, status, models.StatusDelivered),
		CanReceive:       role == models.RoleCustomer && CanTransition(role, status, models.StatusReceived),
		CanRate:          role == models.RoleCustomer && status == models.StatusReceived,
	}
}
