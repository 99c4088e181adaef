package models

import "errors"

var (
	ErrRequiredFieldsMissing   = errors.New("необходимо корректно заполнить все обязательные поля")
	ErrSecondDepositorRequired = errors.New("для совместного вклада обязателен второй вкладчик")
	ErrUnknownAccountType      = errors.New("неизвестный тип вклада")
)

// AccountType - тип вклада: единоличный или совместный
type AccountType string

const (
	AccountTypeSingle AccountType = "single"
	AccountTypeJoint  AccountType = "joint"
)

// IsValid проверяет, что тип входит в закрытый набор значений
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeSingle, AccountTypeJoint:
		return true
	}
	return false
}

// Account - запись депозитного вклада
// Пример строки:
// id  account_number  account_type  depositor_1  depositor_2  amount  maturity_date  agent
// 1   1000034567      single        Ram          Sita         2000    20-02-2027     3197
type Account struct {
	ID            int64       `json:"id"`
	AccountNumber string      `json:"account_number"`
	AccountType   AccountType `json:"account_type"`
	Depositor1    string      `json:"depositor_1"`
	Depositor2    string      `json:"depositor_2,omitempty"`
	Amount        int64       `json:"amount"`
	MaturityDate  string      `json:"maturity_date"`
	Agent         string      `json:"agent"`
}

// Validate проверяет запись перед сохранением.
// Правила проверяются по порядку, возвращается первая найденная ошибка.
func (a *Account) Validate() error {
	// Amount == 0 считается незаполненным полем, как и пустая строка
	if a.AccountNumber == "" || a.AccountType == "" || a.Depositor1 == "" ||
		a.Amount == 0 || a.MaturityDate == "" || a.Agent == "" {
		return ErrRequiredFieldsMissing
	}

	if !a.AccountType.IsValid() {
		return ErrUnknownAccountType
	}

	if a.AccountType == AccountTypeJoint && a.Depositor2 == "" {
		return ErrSecondDepositorRequired
	}

	return nil
}

type AccountRequest struct {
	AccountNumber string      `json:"account_number"`
	AccountType   AccountType `json:"account_type"`
	Depositor1    string      `json:"depositor_1"`
	Depositor2    string      `json:"depositor_2"`
	Amount        int64       `json:"amount"`
	MaturityDate  string      `json:"maturity_date"`
	Agent         string      `json:"agent"`
}

func (r AccountRequest) ToAccount() Account {
	return Account{
		AccountNumber: r.AccountNumber,
		AccountType:   r.AccountType,
		Depositor1:    r.Depositor1,
		Depositor2:    r.Depositor2,
		Amount:        r.Amount,
		MaturityDate:  r.MaturityDate,
		Agent:         r.Agent,
	}
}

type AccountListResponse struct {
	Accounts []Account `json:"accounts"`
	Total    int       `json:"total"`
}

type ImportAccountsRequest struct {
	Accounts []AccountRequest `json:"accounts"`
}
