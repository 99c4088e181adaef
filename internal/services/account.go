package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"dop-buddy/internal/cache"
	"dop-buddy/internal/models"
	"dop-buddy/internal/utils"
	"dop-buddy/internal/worker"
)

// AccountStore - контракт хранилища вкладов
type AccountStore interface {
	FetchByIDs(ctx context.Context, ids []int64) ([]models.Account, error)
	Save(ctx context.Context, account *models.Account) (int64, error)
	Update(ctx context.Context, account *models.Account) error
}

type AccountService struct {
	store      AccountStore
	cache      *cache.RedisCache
	workerPool *worker.WorkerPool
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{
		store: store,
		cache: nil,
	}
}

func NewAccountServiceWithCache(store AccountStore, cache *cache.RedisCache) *AccountService {
	return &AccountService{
		store: store,
		cache: cache,
	}
}

// SetWorkerPool подключает пул воркеров для фоновой обработки импорта
func (s *AccountService) SetWorkerPool(pool *worker.WorkerPool) {
	s.workerPool = pool
	utils.LogSuccess("AccountService", "Worker Pool подключен к сервису вкладов")
}

// Fetch возвращает вклады по набору id, используя кеш там, где он есть
func (s *AccountService) Fetch(ctx context.Context, ids []int64) ([]models.Account, error) {
	utils.LogInfo("AccountService", fmt.Sprintf("Выборка вкладов по id: %v", ids))

	if s.cache == nil {
		return s.store.FetchByIDs(ctx, ids)
	}

	accounts := []models.Account{}
	missed := []int64{}

	for _, id := range ids {
		var account models.Account
		err := s.cache.GetJSON(ctx, cache.AccountKey(id), &account)
		if err == nil {
			utils.LogSuccess("Cache", fmt.Sprintf("HIT: вклад %d получен из кеша", id))
			accounts = append(accounts, account)
			continue
		}
		if err != redis.Nil {
			utils.LogWarning("Cache", fmt.Sprintf("Ошибка чтения из кеша: %v", err))
		}
		missed = append(missed, id)
	}

	if len(missed) == 0 {
		return accounts, nil
	}

	fetched, err := s.store.FetchByIDs(ctx, missed)
	if err != nil {
		utils.LogError("AccountService", "Ошибка выборки вкладов", err)
		return nil, err
	}

	for _, account := range fetched {
		if err := s.cache.SetJSON(ctx, cache.AccountKey(account.ID), account, cache.AccountTTL); err != nil {
			utils.LogWarning("Cache", fmt.Sprintf("Не удалось сохранить вклад %d в кеш: %v", account.ID, err))
		}
	}

	accounts = append(accounts, fetched...)

	utils.LogSuccess("AccountService", fmt.Sprintf("Найдено вкладов: %d (из кеша: %d)", len(accounts), len(accounts)-len(fetched)))
	return accounts, nil
}

// Save проверяет запись и сохраняет её как новый вклад, возвращая присвоенный id
func (s *AccountService) Save(ctx context.Context, account *models.Account) (int64, error) {
	utils.LogInfo("AccountService", fmt.Sprintf("Сохранение вклада с номером %s", account.AccountNumber))

	if err := account.Validate(); err != nil {
		utils.LogWarning("AccountService", fmt.Sprintf("Вклад %s не прошёл проверку: %v", account.AccountNumber, err))
		return 0, err
	}

	id, err := s.store.Save(ctx, account)
	if err != nil {
		utils.LogError("AccountService", fmt.Sprintf("Ошибка сохранения вклада %s", account.AccountNumber), err)
		return 0, err
	}

	utils.LogSuccess("AccountService", fmt.Sprintf("Вклад %s сохранён (ID: %d)", account.AccountNumber, id))
	return id, nil
}

// Update выполняет частичное обновление существующего вклада
func (s *AccountService) Update(ctx context.Context, account *models.Account) error {
	utils.LogInfo("AccountService", fmt.Sprintf("Обновление вклада с id %d", account.ID))

	if err := s.store.Update(ctx, account); err != nil {
		utils.LogError("AccountService", fmt.Sprintf("Ошибка обновления вклада %d", account.ID), err)
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cache.AccountKey(account.ID))
		utils.LogInfo("Cache", fmt.Sprintf("Инвалидирован кеш вклада %d", account.ID))
	}

	utils.LogSuccess("AccountService", fmt.Sprintf("Вклад %d обновлён", account.ID))
	return nil
}
