package notifications

import (
	"context"
	"fmt"
	"sync"

	"deskhive/internal/seats"
	"deskhive/internal/shared/config"
	"deskhive/pkg/logger"
)

// Service is the notification pipeline: it accepts seat-block notices from
// the seat directory, queues them on Kafka, and drains the queue into email
// deliveries via consumer workers.
type Service interface {
	seats.Notifier

	Start(ctx context.Context) error
	Stop() error
}

type kafkaService struct {
	producer   NotificationProducer
	consumer   NotificationConsumer
	numWorkers int
	log        *logger.Logger

	isRunning bool
	mu        sync.Mutex
}

// NewService builds the Kafka-backed pipeline from application config. When
// SMTP is not configured the consumer logs deliveries instead of sending.
func NewService(cfg *config.Config) (Service, error) {
	var emailService EmailService
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    true,
		})
		if err != nil {
			return nil, err
		}
		emailService = smtpService
	} else {
		emailService = NewLogEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	return &kafkaService{
		producer:   producer,
		consumer:   consumer,
		numWorkers: cfg.Kafka.NumConsumerWorkers,
		log:        logger.GetDefault(),
	}, nil
}

func (s *kafkaService) NotifySeatBlocked(ctx context.Context, notice seats.SeatBlockNotice) error {
	notification := NewSeatBlockNotification(
		notice.RecipientID,
		notice.RecipientEmail,
		notice.RecipientName,
		notice.BookingID,
		notice.SeatCode,
		notice.BookingDate,
		notice.Slot,
		notice.Reason,
	)
	return s.producer.PublishNotification(ctx, notification)
}

func (s *kafkaService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	if err := s.consumer.StartConsumers(ctx, s.numWorkers); err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	s.isRunning = true
	return nil
}

func (s *kafkaService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	if err := s.consumer.Stop(); err != nil {
		s.log.Error("error stopping notification consumer", "error", err.Error())
	}
	if err := s.producer.Close(); err != nil {
		s.log.Error("error closing notification producer", "error", err.Error())
	}

	s.isRunning = false
	return nil
}

// LogNotifier is the degraded-mode notifier used when Kafka is unreachable
// at startup: notices go straight to the log so a seat block never fails.
type LogNotifier struct {
	email EmailService
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{email: NewLogEmailService()}
}

func (n *LogNotifier) NotifySeatBlocked(ctx context.Context, notice seats.SeatBlockNotice) error {
	notification := NewSeatBlockNotification(
		notice.RecipientID,
		notice.RecipientEmail,
		notice.RecipientName,
		notice.BookingID,
		notice.SeatCode,
		notice.BookingDate,
		notice.Slot,
		notice.Reason,
	)
	return n.email.SendSeatBlockNotice(ctx, notification)
}

func (n *LogNotifier) Start(ctx context.Context) error { return nil }
func (n *LogNotifier) Stop() error                     { return nil }
