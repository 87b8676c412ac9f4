package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *entity.BankAccount) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*entity.BankAccount)
	return b, args.Error(1)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID string) ([]*entity.BankAccount, error) {
	args := m.Called(ctx, userID)
	bs, _ := args.Get(0).([]*entity.BankAccount)
	return bs, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type published struct {
	msgType string
	body    any
}

type recordingPublisher struct {
	msgs []published
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, msgType string, body any) error {
	p.msgs = append(p.msgs, published{msgType: msgType, body: body})
	return p.err
}
