package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"dop-buddy/internal/models"
	"dop-buddy/internal/repository"
	"dop-buddy/internal/services"
	"dop-buddy/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	agentRepo   *repository.AgentRepository
}

func NewAuthHandler(authService *services.AuthService, agentRepo *repository.AgentRepository) *AuthHandler {
	utils.LogSuccess("AuthHandler", "Инициализирован обработчик аутентификации")
	return &AuthHandler{
		authService: authService,
		agentRepo:   agentRepo,
	}
}

// RegisterHandler - регистрация агента
func (h *AuthHandler) RegisterHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/register", "anonymous")

	var req models.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Ошибка парсинга JSON", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Неверный формат данных",
		})
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	if req.Name == "" || req.Password == "" {
		utils.LogWarning("AuthHandler", "Отсутствуют обязательные поля")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Имя и пароль обязательны",
		})
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	if len(req.Password) < 6 {
		utils.LogWarning("AuthHandler", "Пароль слишком короткий")
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Пароль должен быть не менее 6 символов",
		})
		utils.LogResponse("/register", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	utils.LogInfo("AuthHandler", fmt.Sprintf("Регистрация агента: %s", req.Name))

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка хеширования пароля", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Внутренняя ошибка сервера",
		})
		utils.LogResponse("/register", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	agent := &models.Agent{
		Name:         req.Name,
		PasswordHash: passwordHash,
	}

	if err := h.agentRepo.Create(ctx, agent); err != nil {
		utils.LogError("AuthHandler", fmt.Sprintf("Ошибка создания агента %s", req.Name), err)
		ctx.SetStatusCode(fasthttp.StatusConflict)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Агент с таким именем уже существует",
		})
		utils.LogResponse("/register", fasthttp.StatusConflict, time.Since(startTime))
		return
	}

	utils.LogSuccess("AuthHandler", fmt.Sprintf("Агент зарегистрирован: %s", agent.Name))

	ctx.SetStatusCode(fasthttp.StatusCreated)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]interface{}{
		"message":    "Агент успешно зарегистрирован",
		"agent_id":   agent.ID,
		"name":       agent.Name,
		"created_at": agent.CreatedAt,
	})

	utils.LogResponse("/register", fasthttp.StatusCreated, time.Since(startTime))
}

// LoginHandler - вход агента
func (h *AuthHandler) LoginHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()
	utils.LogRequest("POST", "/login", "anonymous")

	var req models.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		utils.LogError("AuthHandler", "Ошибка парсинга JSON", err)
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Неверный формат данных",
		})
		utils.LogResponse("/login", fasthttp.StatusBadRequest, time.Since(startTime))
		return
	}

	utils.LogInfo("AuthHandler", fmt.Sprintf("Попытка входа агента: %s", req.Name))

	agent, err := h.agentRepo.GetByName(ctx, req.Name)
	if err != nil {
		utils.LogWarning("AuthHandler", fmt.Sprintf("Агент не найден: %s", req.Name))
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Неверное имя или пароль",
		})
		utils.LogResponse("/login", fasthttp.StatusUnauthorized, time.Since(startTime))
		return
	}

	if err := h.authService.CheckPasswordHash(req.Password, agent.PasswordHash); err != nil {
		utils.LogWarning("AuthHandler", fmt.Sprintf("Неверный пароль для агента: %s", req.Name))
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Неверное имя или пароль",
		})
		utils.LogResponse("/login", fasthttp.StatusUnauthorized, time.Since(startTime))
		return
	}

	token, err := h.authService.GenerateToken(agent.ID)
	if err != nil {
		utils.LogError("AuthHandler", "Ошибка генерации токена", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		_ = json.NewEncoder(ctx).Encode(map[string]string{
			"error": "Внутренняя ошибка сервера",
		})
		utils.LogResponse("/login", fasthttp.StatusInternalServerError, time.Since(startTime))
		return
	}

	utils.LogSuccess("AuthHandler", fmt.Sprintf("Агент вошёл: %s (ID: %s)", agent.Name, agent.ID))

	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType("application/json")
	_ = json.NewEncoder(ctx).Encode(map[string]interface{}{
		"message":  "Вход выполнен успешно",
		"token":    token,
		"agent_id": agent.ID,
		"name":     agent.Name,
	})

	utils.LogResponse("/login", fasthttp.StatusOK, time.Since(startTime))
}
