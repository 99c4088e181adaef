package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/valyala/fasthttp"

	"dop-buddy/internal/models"
	"dop-buddy/internal/repository"
	"dop-buddy/internal/utils"
)

// AccountManager - операции над вкладами, нужные HTTP-слою
type AccountManager interface {
	Fetch(ctx context.Context, ids []int64) ([]models.Account, error)
	Save(ctx context.Context, account *models.Account) (int64, error)
	Update(ctx context.Context, account *models.Account) error
	ImportAccounts(accounts []models.Account) (string, error)
}

type AccountHandler struct {
	accountService AccountManager
}

func NewAccountHandler(accountService AccountManager) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount обрабатывает POST /accounts - оформление нового вклада
func (h *AccountHandler) CreateAccount(ctx *fasthttp.RequestCtx) {
	agentID, ok := ctx.UserValue("agent_id").(string)
	if !ok {
		utils.LogError("AccountHandler", "agent_id не найден в контексте", nil)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Unauthorized"})
		return
	}

	var req models.AccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AccountHandler", "Ошибка парсинга запроса", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Неверный формат данных"})
		return
	}

	utils.LogInfo("AccountHandler", fmt.Sprintf("Запрос на оформление вклада %s от агента %s", req.AccountNumber, agentID))

	account := req.ToAccount()
	id, err := h.accountService.Save(ctx, &account)
	if err != nil {
		writeAccountError(ctx, err)
		utils.LogError("AccountHandler", fmt.Sprintf("Ошибка оформления вклада %s", req.AccountNumber), err)
		return
	}
	account.ID = id

	ctx.SetStatusCode(fasthttp.StatusCreated)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(account)
}

// GetAccounts обрабатывает GET /accounts?ids=1,2 - выборка вкладов по id
func (h *AccountHandler) GetAccounts(ctx *fasthttp.RequestCtx) {
	rawIDs := string(ctx.QueryArgs().Peek("ids"))
	if rawIDs == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Параметр ids обязателен"})
		return
	}

	ids := []int64{}
	for _, part := range strings.Split(rawIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Неверный формат id: " + part})
			return
		}
		ids = append(ids, id)
	}

	accounts, err := h.accountService.Fetch(ctx, ids)
	if err != nil {
		utils.LogError("AccountHandler", "Ошибка выборки вкладов", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Ошибка выборки вкладов"})
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(models.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	})
}

// UpdateAccount обрабатывает PUT /accounts/{id} - частичное обновление вклада.
// Пустые поля тела запроса не трогают сохранённые значения.
func (h *AccountHandler) UpdateAccount(ctx *fasthttp.RequestCtx) {
	rawID, _ := ctx.UserValue("account_id").(string)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Неверный формат id вклада"})
		return
	}

	var req models.AccountRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AccountHandler", "Ошибка парсинга запроса", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Неверный формат данных"})
		return
	}

	account := req.ToAccount()
	account.ID = id

	utils.LogInfo("AccountHandler", fmt.Sprintf("Запрос на обновление вклада %d", id))

	if err := h.accountService.Update(ctx, &account); err != nil {
		writeAccountError(ctx, err)
		utils.LogError("AccountHandler", fmt.Sprintf("Ошибка обновления вклада %d", id), err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]interface{}{
		"message": "Вклад успешно обновлён",
		"id":      id,
	})
}

// writeAccountError переводит ошибки сервиса вкладов в HTTP-статусы
func writeAccountError(ctx *fasthttp.RequestCtx, err error) {
	ctx.SetContentType("application/json")

	switch {
	case errors.Is(err, models.ErrRequiredFieldsMissing),
		errors.Is(err, models.ErrSecondDepositorRequired),
		errors.Is(err, models.ErrUnknownAccountType):
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": err.Error()})

	case errors.Is(err, repository.ErrAccountNotFound):
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": err.Error()})

	default:
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			ctx.SetStatusCode(fasthttp.StatusConflict)
			_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Вклад с таким номером уже существует"})
			return
		}
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Внутренняя ошибка сервера"})
	}
}
