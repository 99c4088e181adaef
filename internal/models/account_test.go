package models

import (
	"errors"
	"testing"
)

func validSingleAccount() Account {
	return Account{
		AccountNumber: "1000034567",
		AccountType:   AccountTypeSingle,
		Depositor1:    "Ram",
		Amount:        2000,
		MaturityDate:  "20-02-2027",
		Agent:         "3197",
	}
}

func TestValidateSingleAccount(t *testing.T) {
	account := validSingleAccount()
	if err := account.Validate(); err != nil {
		t.Fatalf("expected valid account, got %v", err)
	}
}

func TestValidateJointAccount(t *testing.T) {
	account := validSingleAccount()
	account.AccountType = AccountTypeJoint
	account.Depositor2 = "Sita"
	if err := account.Validate(); err != nil {
		t.Fatalf("expected valid joint account, got %v", err)
	}
}

func TestValidateJointAccountWithoutSecondDepositor(t *testing.T) {
	account := validSingleAccount()
	account.AccountType = AccountTypeJoint
	account.Depositor2 = ""

	err := account.Validate()
	if !errors.Is(err, ErrSecondDepositorRequired) {
		t.Fatalf("expected ErrSecondDepositorRequired, got %v", err)
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Account)
	}{
		{"account_number", func(a *Account) { a.AccountNumber = "" }},
		{"account_type", func(a *Account) { a.AccountType = "" }},
		{"depositor_1", func(a *Account) { a.Depositor1 = "" }},
		{"amount", func(a *Account) { a.Amount = 0 }},
		{"maturity_date", func(a *Account) { a.MaturityDate = "" }},
		{"agent", func(a *Account) { a.Agent = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := validSingleAccount()
			tt.mutate(&account)

			err := account.Validate()
			if !errors.Is(err, ErrRequiredFieldsMissing) {
				t.Fatalf("expected ErrRequiredFieldsMissing, got %v", err)
			}
		})
	}
}

func TestValidateUnknownAccountType(t *testing.T) {
	account := validSingleAccount()
	account.AccountType = "premium"

	err := account.Validate()
	if !errors.Is(err, ErrUnknownAccountType) {
		t.Fatalf("expected ErrUnknownAccountType, got %v", err)
	}
}

func TestValidateShortCircuitsOnRequiredFields(t *testing.T) {
	// Пустые обязательные поля должны перекрывать правило совместного вклада
	account := Account{AccountType: AccountTypeJoint}

	err := account.Validate()
	if !errors.Is(err, ErrRequiredFieldsMissing) {
		t.Fatalf("expected ErrRequiredFieldsMissing, got %v", err)
	}
}

func TestAccountTypeIsValid(t *testing.T) {
	if !AccountTypeSingle.IsValid() || !AccountTypeJoint.IsValid() {
		t.Fatal("expected single and joint to be valid types")
	}
	if AccountType("premium").IsValid() {
		t.Fatal("expected unknown type to be invalid")
	}
}
