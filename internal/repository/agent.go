package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"dop-buddy/internal/models"
	"dop-buddy/internal/utils"
)

type AgentRepository struct {
	db *pgxpool.Pool
}

func NewAgentRepository(db *pgxpool.Pool) *AgentRepository {
	utils.LogSuccess("AgentRepository", "Инициализирован репозиторий агентов")
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, agent *models.Agent) error {
	agent.ID = uuid.New().String()

	query := `INSERT INTO agents (id, name, password_hash) VALUES ($1, $2, $3) RETURNING created_at`

	utils.LogDB("CREATE AGENT", fmt.Sprintf("Создание агента: %s", agent.Name))

	err := r.db.QueryRow(ctx, query, agent.ID, agent.Name, agent.PasswordHash).Scan(&agent.CreatedAt)
	if err != nil {
		utils.LogError("AgentRepository", fmt.Sprintf("Ошибка создания агента %s", agent.Name), err)
		return err
	}

	utils.LogSuccess("AgentRepository", fmt.Sprintf("Агент создан: %s (ID: %s)", agent.Name, agent.ID))
	return nil
}

func (r *AgentRepository) GetByName(ctx context.Context, name string) (*models.Agent, error) {
	query := `SELECT id, name, password_hash, created_at FROM agents WHERE name = $1`

	utils.LogDB("GET AGENT", fmt.Sprintf("Поиск агента: %s", name))

	agent := &models.Agent{}
	err := r.db.QueryRow(ctx, query, name).Scan(&agent.ID, &agent.Name, &agent.PasswordHash, &agent.CreatedAt)
	if err != nil {
		utils.LogWarning("AgentRepository", fmt.Sprintf("Агент не найден: %s", name))
		return nil, err
	}

	return agent, nil
}
