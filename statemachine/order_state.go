// Package statemachine is the authoritative definition of the order
// lifecycle: which status changes exist, what action names them, and
// which role may perform them.
package statemachine

import (
	"github.com/PolarBear1017/FoodSheep/apperrors"
	"github.com/PolarBear1017/FoodSheep/models"
)

// Action is a lifecycle operation requested against an order.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From   models.OrderStatus `json:"from"`
	Action Action             `json:"action"`
	To     models.OrderStatus `json:"to"`
	Actor  models.UserRole    `json:"actor"`
}

// validTransitions is the full state machine. Everything not listed
// here is illegal: completed, rejected and cancelled are terminal.
var validTransitions = []Transition{
	{From: models.StatusPending, Action: ActionAccept, To: models.StatusAccepted, Actor: models.RoleMerchant},
	{From: models.StatusPending, Action: ActionReject, To: models.StatusRejected, Actor: models.RoleMerchant},
	{From: models.StatusPending, Action: ActionCancel, To: models.StatusCancelled, Actor: models.RoleCustomer},
	{From: models.StatusAccepted, Action: ActionComplete, To: models.StatusCompleted, Actor: models.RoleMerchant},
}

type transitionKey struct {
	From   models.OrderStatus
	Action Action
	Actor  models.UserRole
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]models.OrderStatus {
	m := make(map[transitionKey]models.OrderStatus)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.Action, t.Actor}] = t.To
	}
	return m
}()

// ParseAction validates an action name from a request path.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionAccept, ActionReject, ActionComplete, ActionCancel:
		return a, nil
	default:
		return "", apperrors.NewValidationError("action", "unknown action '"+s+"'")
	}
}

// Apply returns the status an order moves to when the actor performs
// the action, or an InvalidTransitionError when the state machine has
// no such edge.
func Apply(from models.OrderStatus, action Action, actor models.UserRole) (models.OrderStatus, error) {
	if to, ok := transitionMap[transitionKey{from, action, actor}]; ok {
		return to, nil
	}
	return "", apperrors.NewInvalidTransitionError(
		"cannot " + string(action) + " an order in status '" + string(from) +
			"' as " + string(actor) + "; valid actions from here: " + describeValidFrom(from, actor),
	)
}

// ValidActionsFrom returns the actions the actor may perform on an
// order in the given status.
func ValidActionsFrom(status models.OrderStatus, actor models.UserRole) []Action {
	var actions []Action
	for _, t := range validTransitions {
		if t.From == status && t.Actor == actor {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

func describeValidFrom(status models.OrderStatus, actor models.UserRole) string {
	actions := ValidActionsFrom(status, actor)
	if len(actions) == 0 {
		return "none"
	}
	result := ""
	for i, a := range actions {
		if i > 0 {
			result += ", "
		}
		result += string(a)
	}
	return result
}

// All returns the full state machine for documentation endpoints.
func All() []Transition {
	return validTransitions
}
