// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockContractDraftRepository struct {
	mock.Mock
}

func NewMockContractDraftRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockContractDraftRepository {
	m := &MockContractDraftRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockContractDraftRepository) Create(ctx context.Context, draft *model.ContractDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockContractDraftRepository) Get(ctx context.Context, id, owner string) (*model.ContractDraft, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContractDraft), args.Error(1)
}

func (m *MockContractDraftRepository) Update(ctx context.Context, draft *model.ContractDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockContractDraftRepository) Delete(ctx context.Context, id, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *MockContractDraftRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*model.ContractDraft, error) {
	args := m.Called(ctx, owner, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ContractDraft), args.Error(1)
}
