package service

import (
	"github.com/Emil0510/learn-ai/internal/domain"
)

// StudySetService exposes read access to saved study sets.
type StudySetService struct {
	repo   domain.StudySetRepository
	logger domain.Logger
}

func NewStudySetService(repo domain.StudySetRepository, logger domain.Logger) *StudySetService {
	return &StudySetService{repo: repo, logger: logger}
}

func (s *StudySetService) GetStudySet(id, token string) (*domain.StudySet, error) {
	return s.repo.GetByID(id, token)
}

func (s *StudySetService) GetStudySetsByUserID(userID, token string) ([]*domain.StudySet, error) {
	sets, err := s.repo.GetByUserID(userID, token)
	if err != nil {
		return nil, err
	}
	if sets == nil {
		sets = []*domain.StudySet{}
	}
	return sets, nil
}
