package inmemory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fastfeet/internal/adapters/out/inmemory"
	"fastfeet/internal/core/domain/model/kernel"
	"fastfeet/internal/core/domain/model/order"
	"fastfeet/internal/core/domain/model/recipient"
	"fastfeet/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_ReadsAreIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository()
	o := makeOrder(t, "Springfield", 0)
	require.NoError(t, repo.Create(ctx, o))

	t.Run("unsaved_changes_stay_with_the_caller", func(t *testing.T) {
		// Given
		loaded, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)

		// When
		require.NoError(t, loaded.SetStatus(order.Done))

		// Then
		reloaded, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Waiting, reloaded.Status())
		assert.NotSame(t, loaded, reloaded)
	})

	t.Run("created_aggregate_is_not_shared", func(t *testing.T) {
		o.SetTitle("Changed after create")

		reloaded, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, "Parcel", reloaded.Title())
	})

	t.Run("listed_orders_are_copies", func(t *testing.T) {
		listed, err := repo.FindManyRecentByCityAwaitingOrInProgress(ctx, "Springfield", kernel.NewUUID(), page(t, 1))
		require.NoError(t, err)
		require.Len(t, listed, 1)

		require.NoError(t, listed[0].SetStatus(order.Done))

		again, err := repo.FindManyRecentByCityAwaitingOrInProgress(ctx, "Springfield", kernel.NewUUID(), page(t, 1))
		require.NoError(t, err)
		assert.Len(t, again, 1)
	})
}

func TestRecipientRepository_UnsavedChangesStayWithTheCaller(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewRecipientRepository(inmemory.NewStore())
	rec, err := recipient.NewRecipient("Bart")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, rec))

	loaded, err := repo.FindByID(ctx, rec.ID())
	require.NoError(t, err)
	orderID := kernel.NewUUID()
	require.NoError(t, loaded.AddOrder(orderID))

	reloaded, err := repo.FindByID(ctx, rec.ID())
	require.NoError(t, err)
	assert.False(t, reloaded.HasOrder(orderID))
}

func TestUnitOfWork_RollbackLeavesStoredStateUntouched(t *testing.T) {
	// Given
	ctx := context.Background()
	f := newUoWFixture()
	o := makeOrder(t, "Springfield", 0)
	require.NoError(t, f.orders.Create(ctx, o))
	rec, err := recipient.NewRecipient("Homer")
	require.NoError(t, err)
	require.NoError(t, f.recipients.Create(ctx, rec))

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	loaded, err := uow.OrderRepository().FindByID(ctx, o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.SetCourierID(kernel.NewUUID()))
	require.NoError(t, loaded.SetStatus(order.PickedUp))
	require.NoError(t, uow.OrderRepository().Save(ctx, loaded))
	loadedRec, err := uow.RecipientRepository().FindByID(ctx, rec.ID())
	require.NoError(t, err)
	require.NoError(t, loadedRec.AddOrder(o.ID()))
	require.NoError(t, uow.RecipientRepository().Save(ctx, loadedRec))

	// When
	require.NoError(t, uow.Rollback(ctx))

	// Then
	stored, err := f.orders.FindByID(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Waiting, stored.Status())
	assert.Nil(t, stored.CourierID())
	storedRec, err := f.recipients.FindByID(ctx, rec.ID())
	require.NoError(t, err)
	assert.False(t, storedRec.HasOrder(o.ID()))
	assert.Zero(t, f.delivered)
}

func TestUnitOfWork_CommitDispatchesEveryOrderDespiteFailures(t *testing.T) {
	// Given
	ctx := context.Background()
	f := newUoWFixture()
	first := makeOrder(t, "Springfield", 0)
	second := makeOrder(t, "Springfield", 1)
	boom := errors.New("boom")
	var reached []kernel.UUID
	f.bus.Subscribe(order.StatusChangedEventName, func(_ context.Context, e kernel.DomainEvent) error {
		if e.AggregateID().IsEqual(first.ID()) {
			return boom
		}
		reached = append(reached, e.AggregateID())
		return nil
	})

	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	for _, o := range []*order.Order{first, second} {
		require.NoError(t, uow.OrderRepository().Create(ctx, o))
		require.NoError(t, o.SetStatus(order.PickedUp))
		require.NoError(t, uow.OrderRepository().Save(ctx, o))
	}

	// When
	err := uow.Commit(ctx)

	// Then
	require.ErrorIs(t, err, boom)
	assert.Empty(t, first.DomainEvents())
	assert.Empty(t, second.DomainEvents())
	assert.Equal(t, []kernel.UUID{second.ID()}, reached, "a failure does not stop later orders")
}

func TestOrderRepository_LastPageIsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository()
	require.NoError(t, repo.Create(ctx, makeOrder(t, "Springfield", 0)))

	got, err := repo.FindManyRecentByCityAwaitingOrInProgress(ctx, "Springfield", kernel.NewUUID(), page(t, ports.MaxPage))

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestOrderRepository_ConcurrentUseCases(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository()
	courierID := kernel.NewUUID()
	var created []*order.Order
	for i := range 10 {
		o := makeOrder(t, "Springfield", i)
		require.NoError(t, repo.Create(ctx, o))
		created = append(created, o)
	}

	firstPage := page(t, 1)
	var wg sync.WaitGroup
	for _, o := range created {
		wg.Add(2)
		go func() {
			defer wg.Done()
			loaded, err := repo.FindByID(ctx, o.ID())
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, loaded.SetCourierID(courierID))
			assert.NoError(t, loaded.SetStatus(order.PickedUp))
			assert.NoError(t, repo.Save(ctx, loaded))
		}()
		go func() {
			defer wg.Done()
			listed, err := repo.FindManyRecentByCityAwaitingOrInProgress(ctx, "Springfield", courierID, firstPage)
			assert.NoError(t, err)
			for _, l := range listed {
				assert.NotEqual(t, order.Done, l.Status())
			}
		}()
	}
	wg.Wait()

	got, err := repo.FindManyRecentByCityAwaitingOrInProgress(ctx, "Springfield", courierID, page(t, 1))
	require.NoError(t, err)
	require.Len(t, got, len(created))
	for _, o := range got {
		assert.Equal(t, order.PickedUp, o.Status())
	}
}
