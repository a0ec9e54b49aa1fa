package sequence

import (
	"context"
	"errors"
	"testing"

	"bizcare-service/internal/domain/sequence"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCounterStore struct {
	mock.Mock
}

func (m *mockCounterStore) NextValueWithTx(ctx context.Context, tx pgx.Tx, seq sequence.Sequence) (int64, error) {
	args := m.Called(ctx, tx, seq)
	return args.Get(0).(int64), args.Error(1)
}

func TestAllocator_FormatsCounterValue(t *testing.T) {
	store := new(mockCounterStore)
	store.On("NextValueWithTx", mock.Anything, mock.Anything, sequence.ContractCustomerNumber).Return(int64(1), nil).Once()
	store.On("NextValueWithTx", mock.Anything, mock.Anything, sequence.ContractCustomerNumber).Return(int64(2), nil).Once()

	a := NewAllocator(store, zap.NewNop())

	first, err := a.NextWithTx(context.Background(), nil, sequence.ContractCustomerNumber)
	require.NoError(t, err)
	second, err := a.NextWithTx(context.Background(), nil, sequence.ContractCustomerNumber)
	require.NoError(t, err)

	assert.Equal(t, "CO000001", first)
	assert.Equal(t, "CO000002", second)
	store.AssertExpectations(t)
}

func TestAllocator_PropagatesStoreError(t *testing.T) {
	store := new(mockCounterStore)
	store.On("NextValueWithTx", mock.Anything, mock.Anything, sequence.CustomerCode).Return(int64(0), errors.New("boom"))

	_, err := NewAllocator(store, zap.NewNop()).NextWithTx(context.Background(), nil, sequence.CustomerCode)

	assert.ErrorContains(t, err, "boom")
}

func TestAllocator_RejectsNonPositive(t *testing.T) {
	store := new(mockCounterStore)
	store.On("NextValueWithTx", mock.Anything, mock.Anything, sequence.CustomerCode).Return(int64(0), nil)

	_, err := NewAllocator(store, zap.NewNop()).NextWithTx(context.Background(), nil, sequence.CustomerCode)

	assert.Error(t, err)
}
