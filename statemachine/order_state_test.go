package statemachine

import (
	"errors"
	"testing"

	"github.com/PolarBear1017/FoodSheep/apperrors"
	"github.com/PolarBear1017/FoodSheep/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		from   models.OrderStatus
		action Action
		actor  models.UserRole
		want   models.OrderStatus
		ok     bool
	}{
		{"merchant accepts pending", models.StatusPending, ActionAccept, models.RoleMerchant, models.StatusAccepted, true},
		{"merchant rejects pending", models.StatusPending, ActionReject, models.RoleMerchant, models.StatusRejected, true},
		{"customer cancels pending", models.StatusPending, ActionCancel, models.RoleCustomer, models.StatusCancelled, true},
		{"merchant completes accepted", models.StatusAccepted, ActionComplete, models.RoleMerchant, models.StatusCompleted, true},

		{"cannot complete pending directly", models.StatusPending, ActionComplete, models.RoleMerchant, "", false},
		{"customer cannot cancel accepted", models.StatusAccepted, ActionCancel, models.RoleCustomer, "", false},
		{"customer cannot accept", models.StatusPending, ActionAccept, models.RoleCustomer, "", false},
		{"completed is terminal", models.StatusCompleted, ActionAccept, models.RoleMerchant, "", false},
		{"cancelled is terminal", models.StatusCancelled, ActionComplete, models.RoleMerchant, "", false},
		{"rejected is terminal", models.StatusRejected, ActionAccept, models.RoleMerchant, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.from, tt.action, tt.actor)
			if tt.ok {
				if err != nil {
					t.Fatalf("Expected transition to succeed, got %v", err)
				}
				if got != tt.want {
					t.Errorf("Expected status %s, got %s", tt.want, got)
				}
				return
			}
			var terr *apperrors.InvalidTransitionError
			if !errors.As(err, &terr) {
				t.Errorf("Expected InvalidTransitionError, got %v", err)
			}
		})
	}
}

func TestValidActionsFrom(t *testing.T) {
	merchant := ValidActionsFrom(models.StatusPending, models.RoleMerchant)
	if len(merchant) != 2 {
		t.Errorf("Expected merchant to have 2 actions from pending, got %v", merchant)
	}
	customer := ValidActionsFrom(models.StatusPending, models.RoleCustomer)
	if len(customer) != 1 || customer[0] != ActionCancel {
		t.Errorf("Expected customer to only cancel from pending, got %v", customer)
	}
	if got := ValidActionsFrom(models.StatusCompleted, models.RoleMerchant); len(got) != 0 {
		t.Errorf("Expected no actions from completed, got %v", got)
	}
}

func TestParseAction(t *testing.T) {
	if _, err := ParseAction("accept"); err != nil {
		t.Errorf("Expected accept to parse, got %v", err)
	}
	if _, err := ParseAction("explode"); err == nil {
		t.Error("Expected unknown action to fail")
	}
}
