// The notifier worker consumes booking.confirmed events and delivers the
// confirmation messages.  It runs separately from the HTTP server so mail
// delivery can be slow or down without touching the booking path.
package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/config"
	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/notifier"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Env)
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	var sink queue.NotificationSink
	if cfg.SMTP.Host != "" {
		sink = notifier.NewSMTP(cfg)
		log.Info("notifier using SMTP", zap.String("host", cfg.SMTP.Host))
	} else {
		sink = notifier.NewConsole()
		log.Info("SMTP not configured, logging confirmations to console")
	}

	if err := queue.StartNotificationConsumer(sink); err != nil {
		log.Fatal("notification consumer stopped", zap.Error(err))
	}
}
