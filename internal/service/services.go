package service

import (
	"github.com/mika/reminders-web/internal/config"
	"github.com/mika/reminders-web/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Auth     *AuthService
	Reminder *ReminderService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *zap.Logger) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, repos.Session, cfg, log),
		Reminder: NewReminderService(repos.Reminder, log),
	}
}
