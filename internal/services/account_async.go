package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dop-buddy/internal/models"
	"dop-buddy/internal/utils"
	"dop-buddy/internal/worker"
)

// ImportAccounts ставит сохранение каждого вклада в очередь пула воркеров.
// Ошибки валидации не повторяются, сбои хранилища - повторяются.
func (s *AccountService) ImportAccounts(accounts []models.Account) (string, error) {
	if s.workerPool == nil {
		return "", errors.New("worker pool не инициализирован")
	}

	batchID := uuid.New().String()

	for i := range accounts {
		account := accounts[i]
		jobID := fmt.Sprintf("import-%s-%d", batchID, i)

		job := worker.Job{
			ID: jobID,
			Task: func() error {
				_, err := s.Save(context.Background(), &account)
				return err
			},
			RetryOn: func(err error) bool {
				return !errors.Is(err, models.ErrRequiredFieldsMissing) &&
					!errors.Is(err, models.ErrSecondDepositorRequired) &&
					!errors.Is(err, models.ErrUnknownAccountType)
			},
		}

		if err := s.workerPool.Submit(job); err != nil {
			utils.LogError("AccountService", fmt.Sprintf("Не удалось поставить вклад %s в очередь", account.AccountNumber), err)
			return batchID, err
		}
	}

	utils.LogInfo("AccountService", fmt.Sprintf("Импорт %s: %d вкладов добавлено в очередь обработки", batchID, len(accounts)))
	return batchID, nil
}
