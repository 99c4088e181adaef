package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dop-buddy/internal/models"
	"dop-buddy/internal/utils"
)

var (
	ErrAccountNotFound = errors.New("вклад не найден")
)

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// FetchByIDs возвращает все вклады с перечисленными id.
// Отсутствующие id молча пропускаются, порядок не гарантируется.
func (r *AccountRepository) FetchByIDs(ctx context.Context, ids []int64) ([]models.Account, error) {
	query := `
		SELECT id, account_number, account_type, depositor_1,
		       COALESCE(depositor_2, ''), amount, maturity_date, agent
		FROM accounts
		WHERE id = ANY($1)
	`

	utils.LogDB("FETCH ACCOUNTS", fmt.Sprintf("Выборка вкладов по id: %v", ids))

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки вкладов: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.AccountNumber,
			&account.AccountType,
			&account.Depositor1,
			&account.Depositor2,
			&account.Amount,
			&account.MaturityDate,
			&account.Agent,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования вклада: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения вкладов: %w", err)
	}

	return accounts, nil
}

// Save вставляет новый вклад в рамках транзакции и возвращает присвоенный id.
// Валидация записи выполняется на уровне сервиса до обращения к базе.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO accounts (account_number, account_type, depositor_1,
		                      depositor_2, amount, maturity_date, agent)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		RETURNING id
	`

	utils.LogDB("SAVE ACCOUNT", fmt.Sprintf("Сохранение вклада с номером %s", account.AccountNumber))

	var id int64
	err = tx.QueryRow(ctx, query,
		account.AccountNumber,
		account.AccountType,
		account.Depositor1,
		account.Depositor2,
		account.Amount,
		account.MaturityDate,
		account.Agent,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка сохранения вклада: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	account.ID = id
	return id, nil
}

// Update выполняет частичное обновление вклада: заполненные поля переданной
// записи перезаписывают сохранённые значения, пустые не трогаются.
// Чтение и запись строки происходят в одной транзакции.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	utils.LogDB("UPDATE ACCOUNT", fmt.Sprintf("Обновление вклада с id %d", account.ID))

	var stored models.Account
	err = tx.QueryRow(ctx, `
		SELECT id, account_number, account_type, depositor_1,
		       COALESCE(depositor_2, ''), amount, maturity_date, agent
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`, account.ID).Scan(
		&stored.ID,
		&stored.AccountNumber,
		&stored.AccountType,
		&stored.Depositor1,
		&stored.Depositor2,
		&stored.Amount,
		&stored.MaturityDate,
		&stored.Agent,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrAccountNotFound
		}
		return fmt.Errorf("ошибка чтения вклада %d: %w", account.ID, err)
	}

	if err := applyPartial(&stored, account); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE accounts
		SET account_number = $1, account_type = $2, depositor_1 = $3,
		    depositor_2 = NULLIF($4, ''), amount = $5, maturity_date = $6, agent = $7
		WHERE id = $8
	`,
		stored.AccountNumber,
		stored.AccountType,
		stored.Depositor1,
		stored.Depositor2,
		stored.Amount,
		stored.MaturityDate,
		stored.Agent,
		stored.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления вклада %d: %w", account.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	return nil
}

// applyPartial переносит заполненные поля из patch в stored.
// При смене типа на совместный требуется второй вкладчик, при смене на любой
// другой тип сохранённый второй вкладчик очищается.
func applyPartial(stored, patch *models.Account) error {
	if patch.AccountNumber != "" {
		stored.AccountNumber = patch.AccountNumber
	}

	if patch.AccountType != "" {
		stored.AccountType = patch.AccountType

		if patch.AccountType == models.AccountTypeJoint {
			if patch.Depositor2 == "" {
				return models.ErrSecondDepositorRequired
			}
			stored.Depositor2 = patch.Depositor2
		} else {
			stored.Depositor2 = ""
		}
	}

	if patch.Depositor1 != "" {
		stored.Depositor1 = patch.Depositor1
	}

	// Нулевая сумма означает, что поле не передано
	if patch.Amount != 0 {
		stored.Amount = patch.Amount
	}

	if patch.MaturityDate != "" {
		stored.MaturityDate = patch.MaturityDate
	}

	if patch.Agent != "" {
		stored.Agent = patch.Agent
	}

	return nil
}
