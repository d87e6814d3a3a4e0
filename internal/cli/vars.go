package cli

import (
	"time"

	"todo-app/internal/bot"
	"todo-app/internal/config"
	"todo-app/internal/logger"
	"todo-app/internal/service"
)

// Service instances, set during app initialization in cmd/todo.
var (
	TaskSvc   *service.TaskService
	DigestSvc *service.DigestService
	Notifier  bot.Sender
	AppConfig config.Config
	Log       = logger.Nop()
	Location  = time.Local
)
