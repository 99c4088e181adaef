package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/valyala/fasthttp"

	"dop-buddy/internal/models"
	"dop-buddy/internal/utils"
)

// ImportAccounts обрабатывает POST /accounts/import - пакетный импорт вкладов.
// Записи ставятся в очередь пула воркеров, клиент сразу получает 202.
func (h *AccountHandler) ImportAccounts(ctx *fasthttp.RequestCtx) {
	var req models.ImportAccountsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AccountHandler", "Ошибка парсинга запроса импорта", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Неверный формат данных"})
		return
	}

	if len(req.Accounts) == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Список вкладов пуст"})
		return
	}

	accounts := make([]models.Account, 0, len(req.Accounts))
	for _, r := range req.Accounts {
		accounts = append(accounts, r.ToAccount())
	}

	batchID, err := h.accountService.ImportAccounts(accounts)
	if err != nil {
		utils.LogError("AccountHandler", "Не удалось поставить импорт в очередь", err)
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Очередь обработки недоступна"})
		return
	}

	utils.LogInfo("AccountHandler", fmt.Sprintf("Импорт %s принят: %d вкладов", batchID, len(accounts)))

	ctx.SetStatusCode(fasthttp.StatusAccepted)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]interface{}{
		"status":   "accepted",
		"batch_id": batchID,
		"total":    len(accounts),
	})
}
