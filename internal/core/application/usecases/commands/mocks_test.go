package commands_test

import (
	"context"

	"fastfeet/internal/core/application/usecases/commands"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/notification"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByTrackingCode(ctx context.Context, code string) (*order.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindManyRecentByCityAwaitingOrInProgress(
	ctx context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	args := m.Called(ctx, city, courierID, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindManyRecentByCityCompleted(
	ctx context.Context, city string, courierID kernel.UUID, page ports.PaginationParams,
) ([]*order.Order, error) {
	args := m.Called(ctx, city, courierID, page)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockRecipientRepository struct{ mock.Mock }

func (m *MockRecipientRepository) FindByID(ctx context.Context, id kernel.UUID) (*recipient.Recipient, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipient.Recipient)
	return r, args.Error(1)
}

func (m *MockRecipientRepository) Create(ctx context.Context, r *recipient.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipientRepository) Save(ctx context.Context, r *recipient.Recipient) error {
	return m.Called(ctx, r).Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RecipientRepository() ports.RecipientRepository {
	args := m.Called()
	return args.Get(0).(ports.RecipientRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockRecipientUoWFactory struct{ mock.Mock }

func (m *MockRecipientUoWFactory) Create() commands.RecipientUoW {
	return m.Called().Get(0).(commands.RecipientUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Send(ctx context.Context, n notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}
