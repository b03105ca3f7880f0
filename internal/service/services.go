package service

import (
	"github.com/MKhiriev/go-job-tracker/internal/config"
	"github.com/MKhiriev/go-job-tracker/internal/logger"
	"github.com/MKhiriev/go-job-tracker/internal/store"
)

type Services struct {
	AuthService       AuthService
	JobService        JobService
	AttachmentService AttachmentService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	attachmentService := NewAttachmentService(storages.AttachmentStorage, logger)

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			attachmentService,
			NewLogPasswordResetNotifier(logger),
			cfg.App,
			logger,
		),
		JobService: NewJobValidationService().Wrap(
			NewJobService(storages.JobRepository, attachmentService, logger),
		),
		AttachmentService: attachmentService,
		AppInfoService:    appInfoService,
	}, nil
}
