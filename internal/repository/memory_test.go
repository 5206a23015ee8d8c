package repository

import (
	"context"
	"testing"
	"time"

	"github.com/prperemyshlev/seller-portal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVendorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryVendorRepository()

	v := &domain.Vendor{EmailAddress: "Ada@Example.com", FullName: "Ada"}
	require.NoError(t, repo.Create(ctx, v))
	assert.NotEmpty(t, v.ID)

	err := repo.Create(ctx, &domain.Vendor{EmailAddress: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)

	got.FullName = "Ada Obi"
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Obi", again.FullName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, v.ID))
	_, err = repo.GetByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), ErrNotFound)
	require.NoError(t, repo.Create(ctx, &domain.Vendor{EmailAddress: "ada@example.com"}))
}

func TestMemoryProductRepository_ScopedToVendor(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Product{VendorID: "v-1", Name: "item"}))
		time.Sleep(time.Millisecond)
	}
	other := &domain.Product{VendorID: "v-2", Name: "theirs"}
	require.NoError(t, repo.Create(ctx, other))

	page, total, err := repo.List(ctx, "v-1", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	_, err = repo.GetByID(ctx, "v-1", other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "v-1", other.ID), ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, "v-2", other.ID))
}

func TestMemoryOrderRepository_FilterAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()

	pending := &domain.Order{VendorID: "v-1", Status: domain.OrderPending, Items: []domain.OrderItem{{Name: "a", Quantity: 1}}}
	shipped := &domain.Order{VendorID: "v-1", Status: domain.OrderShipped}
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, shipped))

	orders, total, err := repo.List(ctx, "v-1", domain.OrderPending, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, pending.ID, orders[0].ID)

	updated, err := repo.UpdateStatus(ctx, "v-1", pending.ID, domain.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, updated.Status)

	_, err = repo.UpdateStatus(ctx, "v-2", pending.ID, domain.OrderShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{4, 5}, paginate(items, 3, 0))
	assert.Nil(t, paginate(items, 5, 2))
}
