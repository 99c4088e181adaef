package repository

import (
	"errors"
	"testing"

	"dop-buddy/internal/models"
)

func storedJointAccount() models.Account {
	return models.Account{
		ID:            1,
		AccountNumber: "1000034567",
		AccountType:   models.AccountTypeJoint,
		Depositor1:    "Ram",
		Depositor2:    "Sita",
		Amount:        2000,
		MaturityDate:  "20-02-2027",
		Agent:         "3197",
	}
}

func TestApplyPartialUpdatesOnlyFilledFields(t *testing.T) {
	stored := storedJointAccount()
	patch := models.Account{ID: 1, Amount: 5000}

	if err := applyPartial(&stored, &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Amount != 5000 {
		t.Errorf("amount not updated: got %d", stored.Amount)
	}
	if stored.AccountNumber != "1000034567" || stored.Depositor1 != "Ram" ||
		stored.MaturityDate != "20-02-2027" || stored.Agent != "3197" {
		t.Errorf("untouched fields were modified: %+v", stored)
	}
	if stored.AccountType != models.AccountTypeJoint || stored.Depositor2 != "Sita" {
		t.Errorf("type fields were modified: %+v", stored)
	}
}

func TestApplyPartialZeroAmountLeavesStoredValue(t *testing.T) {
	stored := storedJointAccount()
	patch := models.Account{ID: 1, Depositor1: "Shyam"}

	if err := applyPartial(&stored, &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Amount != 2000 {
		t.Errorf("amount should stay 2000, got %d", stored.Amount)
	}
	if stored.Depositor1 != "Shyam" {
		t.Errorf("depositor_1 not updated: %s", stored.Depositor1)
	}
}

func TestApplyPartialDowngradeToSingleClearsSecondDepositor(t *testing.T) {
	stored := storedJointAccount()
	// Второй вкладчик в патче заполнен, но при единоличном типе он очищается
	patch := models.Account{
		ID:          1,
		AccountType: models.AccountTypeSingle,
		Depositor2:  "Sita",
	}

	if err := applyPartial(&stored, &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.AccountType != models.AccountTypeSingle {
		t.Errorf("type not updated: %s", stored.AccountType)
	}
	if stored.Depositor2 != "" {
		t.Errorf("depositor_2 should be cleared, got %q", stored.Depositor2)
	}
}

func TestApplyPartialUpgradeToJointRequiresSecondDepositor(t *testing.T) {
	stored := storedJointAccount()
	stored.AccountType = models.AccountTypeSingle
	stored.Depositor2 = ""

	patch := models.Account{ID: 1, AccountType: models.AccountTypeJoint}

	err := applyPartial(&stored, &patch)
	if !errors.Is(err, models.ErrSecondDepositorRequired) {
		t.Fatalf("expected ErrSecondDepositorRequired, got %v", err)
	}
}

func TestApplyPartialUpgradeToJointSetsSecondDepositor(t *testing.T) {
	stored := storedJointAccount()
	stored.AccountType = models.AccountTypeSingle
	stored.Depositor2 = ""

	patch := models.Account{
		ID:          1,
		AccountType: models.AccountTypeJoint,
		Depositor2:  "Sita",
	}

	if err := applyPartial(&stored, &patch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Depositor2 != "Sita" {
		t.Errorf("depositor_2 not set: %q", stored.Depositor2)
	}
}

func TestApplyPartialEmptyPatchChangesNothing(t *testing.T) {
	stored := storedJointAccount()
	original := stored

	if err := applyPartial(&stored, &models.Account{ID: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored != original {
		t.Errorf("stored account changed: %+v", stored)
	}
}
