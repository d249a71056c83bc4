package config

import (
	"context"
	"fmt"

	"github.com/Emil0510/learn-ai/internal/domain"
	"github.com/Emil0510/learn-ai/internal/repository"
	"github.com/Emil0510/learn-ai/internal/service"
	"github.com/Emil0510/learn-ai/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient

	StudySetRepository domain.StudySetRepository
	ProgressRepository domain.ProgressRepository

	GenerationService domain.GenerationService
	StudySetService   domain.StudySetService
	ProgressService   domain.ProgressService
}

// NewContainer creates the dependency injection container. It connects to
// Supabase and Vertex AI up front so misconfiguration fails at startup, not
// on the first request.
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	studySetRepo := repository.NewSupabaseStudySetRepository(supabaseClient, appLogger)
	progressRepo := repository.NewSupabaseProgressRepository(supabaseClient, appLogger)

	visionModel, err := service.NewVertexVisionModel(ctx, config.GetVertexProjectID(), config.GetVertexLocation(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vision model: %w", err)
	}

	validator := service.NewUploadValidator(config.GetMaxUploadSize())
	rasterizer := service.NewFitzRasterizer(appLogger)
	storage := service.NewSupabaseStorage(supabaseClient, config.GetStorageBucket(), appLogger)

	generationService := service.NewGenerationService(
		validator,
		rasterizer,
		visionModel,
		storage,
		studySetRepo,
		appLogger,
		config.GetMaxPages(),
		config.GetRasterScale(),
		config.GetGenerationTimeout(),
	)
	studySetService := service.NewStudySetService(studySetRepo, appLogger)
	progressService := service.NewProgressService(progressRepo, appLogger)

	return &Container{
		Config:             config,
		Logger:             appLogger,
		SupabaseClient:     supabaseClient,
		StudySetRepository: studySetRepo,
		ProgressRepository: progressRepo,
		GenerationService:  generationService,
		StudySetService:    studySetService,
		ProgressService:    progressService,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
