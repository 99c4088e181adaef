package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"dop-buddy/internal/middleware"
)

// NewRouter собирает маршруты сервиса.
// Все операции с вкладами доступны только аутентифицированным агентам.
func NewRouter(accountHandler *AccountHandler, authHandler *AuthHandler, authMiddleware *middleware.AuthMiddleware) fasthttp.RequestHandler {
	createAccount := authMiddleware.RequireAuth(accountHandler.CreateAccount)
	getAccounts := authMiddleware.RequireAuth(accountHandler.GetAccounts)
	updateAccount := authMiddleware.RequireAuth(accountHandler.UpdateAccount)
	importAccounts := authMiddleware.RequireAuth(accountHandler.ImportAccounts)

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case path == "/health" && method == fasthttp.MethodGet:
			healthHandler(ctx)

		case path == "/register" && method == fasthttp.MethodPost:
			authHandler.RegisterHandler(ctx)

		case path == "/login" && method == fasthttp.MethodPost:
			authHandler.LoginHandler(ctx)

		case path == "/accounts" && method == fasthttp.MethodPost:
			createAccount(ctx)

		case path == "/accounts" && method == fasthttp.MethodGet:
			getAccounts(ctx)

		case path == "/accounts/import" && method == fasthttp.MethodPost:
			importAccounts(ctx)

		case strings.HasPrefix(path, "/accounts/") && method == fasthttp.MethodPut:
			ctx.SetUserValue("account_id", strings.TrimPrefix(path, "/accounts/"))
			updateAccount(ctx)

		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			ctx.SetContentType("application/json")
			_ = json.NewEncoder(ctx).Encode(map[string]string{"error": "Маршрут не найден"})
		}
	}
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]string{
		"status":  "ok",
		"message": "DopBuddy is running!",
		"time":    time.Now().Format(time.RFC3339),
	})
}
