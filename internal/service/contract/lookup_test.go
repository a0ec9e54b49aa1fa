package contract

import (
	"context"
	"testing"

	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFindByNumber_PrefersCustomerNumber(t *testing.T) {
	h := newHarness(t)
	id := uuid.New()
	h.contracts.On("FindRecord", mock.Anything, contract.Lookup{CustomerNumber: "CO000001"}).
		Return(storedRecord(id, contract.StatusPending), nil)

	detail, err := h.svc.FindByNumber(context.Background(), contract.SearchByNumberRequest{
		CustomerNumber: "CO000001",
		ContractNumber: "CT000009",
	})

	require.NoError(t, err)
	assert.Equal(t, id.String(), detail.ID)
	h.contracts.AssertExpectations(t)
}

func TestFindByNumber_ByContractNumber(t *testing.T) {
	h := newHarness(t)
	h.contracts.On("FindRecord", mock.Anything, contract.Lookup{ContractNumber: "CT000001"}).
		Return(storedRecord(uuid.New(), contract.StatusPending), nil)

	_, err := h.svc.FindByNumber(context.Background(), contract.SearchByNumberRequest{ContractNumber: "CT000001"})

	require.NoError(t, err)
	h.contracts.AssertExpectations(t)
}

func TestFindByNumber_NeedsANumber(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.FindByNumber(context.Background(), contract.SearchByNumberRequest{})

	requireKind(t, err, xerrors.KindValidation)
}

func TestFindByNumber_NotFound(t *testing.T) {
	h := newHarness(t)
	h.contracts.On("FindRecord", mock.Anything, mock.Anything).Return(nil, xerrors.ErrNotFound)

	_, err := h.svc.FindByNumber(context.Background(), contract.SearchByNumberRequest{CustomerNumber: "CO404040"})

	requireKind(t, err, xerrors.KindNotFound)
}

func TestFindLatestByOwner_NormalizesPhone(t *testing.T) {
	h := newHarness(t)
	h.contracts.On("FindRecord", mock.Anything, contract.Lookup{OwnerName: "홍길동", Phone: "01012345678"}).
		Return(storedRecord(uuid.New(), contract.StatusQuoted), nil)

	detail, err := h.svc.FindLatestByOwner(context.Background(), contract.SearchByOwnerRequest{
		Name:  "홍길동",
		Phone: "010 1234 5678",
	})

	require.NoError(t, err)
	assert.Equal(t, "quoted", detail.Status)
	h.contracts.AssertExpectations(t)
}

func TestFindLatestByOwner_CustomerNumberShortcut(t *testing.T) {
	h := newHarness(t)
	h.contracts.On("FindRecord", mock.Anything, contract.Lookup{CustomerNumber: "CO000001"}).
		Return(storedRecord(uuid.New(), contract.StatusPending), nil)

	_, err := h.svc.FindLatestByOwner(context.Background(), contract.SearchByOwnerRequest{CustomerNumber: "CO000001"})

	require.NoError(t, err)
}

func TestFindLatestByOwner_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.FindLatestByOwner(context.Background(), contract.SearchByOwnerRequest{})
	appErr := requireKind(t, err, xerrors.KindValidation)
	assert.Equal(t, []string{"name", "phone"}, appErr.Fields)

	_, err = h.svc.FindLatestByOwner(context.Background(), contract.SearchByOwnerRequest{Name: "홍길동", Phone: "123"})
	requireKind(t, err, xerrors.KindPhoneFormat)

	h.contracts.AssertNotCalled(t, "FindRecord", mock.Anything, mock.Anything)
}

func TestListCustomerContracts(t *testing.T) {
	h := newHarness(t)
	customerID := uuid.New()
	h.contracts.On("ListRecordsByCustomer", mock.Anything, customerID).Return([]*contract.Record{
		storedRecord(uuid.New(), contract.StatusActive),
		storedRecord(uuid.New(), contract.StatusPending),
	}, nil)

	details, err := h.svc.ListCustomerContracts(context.Background(), customerID.String())

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "active", details[0].Status)
}

func TestListCustomerContracts_EmptyIsNotNil(t *testing.T) {
	h := newHarness(t)
	customerID := uuid.New()
	h.contracts.On("ListRecordsByCustomer", mock.Anything, customerID).Return([]*contract.Record{}, nil)

	details, err := h.svc.ListCustomerContracts(context.Background(), customerID.String())

	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestListCustomerContracts_InvalidID(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.ListCustomerContracts(context.Background(), "nope")

	requireKind(t, err, xerrors.KindValidation)
}
