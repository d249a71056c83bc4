package handler

import (
	"context"

	"github.com/Emil0510/learn-ai/internal/domain"

	"github.com/supabase-community/supabase-go"
)

// Mock collaborators shared by handler package tests.

type MockSupabaseClient struct {
	user      *domain.SupabaseUser
	err       error
	lastToken string
}

func NewMockSupabaseClient(user *domain.SupabaseUser, err error) *MockSupabaseClient {
	return &MockSupabaseClient{user: user, err: err}
}

func (m *MockSupabaseClient) Initialize() error { return nil }

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	m.lastToken = token
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *MockSupabaseClient) GetClientWithToken(token string) (*supabase.Client, error) {
	return nil, nil
}

func (m *MockSupabaseClient) Service() (*supabase.Client, error) { return nil, nil }

type MockGenerationService struct {
	resp     *domain.GenerateResponse
	err      error
	lastDoc  *domain.UploadedDocument
	lastUser *domain.SupabaseUser
	calls    int
}

func (m *MockGenerationService) Generate(ctx context.Context, owner *domain.SupabaseUser, doc *domain.UploadedDocument, token string) (*domain.GenerateResponse, error) {
	m.calls++
	m.lastDoc = doc
	m.lastUser = owner
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

type MockStudySetService struct {
	set  *domain.StudySet
	sets []*domain.StudySet
	err  error
}

func (m *MockStudySetService) GetStudySet(id string, token string) (*domain.StudySet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

func (m *MockStudySetService) GetStudySetsByUserID(userID string, token string) ([]*domain.StudySet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sets, nil
}

type MockProgressService struct {
	progress *domain.StudyProgress
	getErr   error
	writeErr error
	lastReq  *domain.ProgressWriteRequest
	lastUser *domain.SupabaseUser
}

func (m *MockProgressService) GetProgress(ctx context.Context, user *domain.SupabaseUser, studySetID string, token string) (*domain.StudyProgress, error) {
	m.lastUser = user
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.progress != nil {
		return m.progress, nil
	}
	return &domain.StudyProgress{
		FlashcardProgress: []domain.FlashcardProgressItem{},
		McqProgress:       []domain.McqProgressItem{},
	}, nil
}

func (m *MockProgressService) RecordAttempt(ctx context.Context, user *domain.SupabaseUser, studySetID string, req *domain.ProgressWriteRequest, token string) error {
	m.lastUser = user
	m.lastReq = req
	return m.writeErr
}
