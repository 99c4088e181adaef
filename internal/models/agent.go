package models

import "time"

// Agent - сотрудник, оформляющий вклады
type Agent struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
