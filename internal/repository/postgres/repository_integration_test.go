package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/customer"
	"bizcare-service/internal/domain/sequence"
	xerrors "bizcare-service/internal/pkg/errors"
	"bizcare-service/internal/repository/postgres"
	"bizcare-service/internal/testutil/pgtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositories(t *testing.T) {
	pool := pgtest.Start(t)
	ctx := context.Background()
	db := postgres.NewDB(pool)
	sequences := postgres.NewSequenceRepository()
	customers := postgres.NewCustomerRepository(pool)
	activities := postgres.NewActivityRepository(pool)

	var stored *customer.Customer

	t.Run("sequence counts independently per name", func(t *testing.T) {
		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		a, err := sequences.NextValueWithTx(ctx, tx, sequence.CustomerCode)
		require.NoError(t, err)
		b, err := sequences.NextValueWithTx(ctx, tx, sequence.CustomerCode)
		require.NoError(t, err)
		c, err := sequences.NextValueWithTx(ctx, tx, sequence.ContractCustomerNumber)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		assert.EqualValues(t, 1, a)
		assert.EqualValues(t, 2, b)
		assert.EqualValues(t, 1, c)
	})

	t.Run("rolled back allocation is reused", func(t *testing.T) {
		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		first, err := sequences.NextValueWithTx(ctx, tx, sequence.ContractCustomerNumber)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		tx, err = db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		again, err := sequences.NextValueWithTx(ctx, tx, sequence.ContractCustomerNumber)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	})

	t.Run("customer create and match", func(t *testing.T) {
		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		c := &customer.Customer{
			CustomerCode: "CO000900",
			BusinessName: sql.NullString{String: "골목분식", Valid: true},
			OwnerName:    sql.NullString{String: "이영희", Valid: true},
			Phone:        sql.NullString{String: "01099998888", Valid: true},
			Status:       customer.StatusActive,
		}
		require.NoError(t, customers.CreateWithTx(ctx, tx, c))
		assert.NotEqual(t, uuid.Nil, c.ID)

		found, err := customers.FindByPhoneAndBusinessWithTx(ctx, tx, "01099998888", "골목분식")
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)

		_, err = customers.FindByPhoneAndBusinessWithTx(ctx, tx, "01099998888", "다른가게")
		assert.ErrorIs(t, err, xerrors.ErrNotFound)

		require.NoError(t, tx.Commit(ctx))
		stored = c
	})

	t.Run("customer update keeps unset fields", func(t *testing.T) {
		require.NotNil(t, stored)
		care := "정기점검"
		updated, err := customers.Update(ctx, stored.ID, nil, &care)
		require.NoError(t, err)
		assert.Equal(t, customer.StatusActive, updated.Status)
		assert.Equal(t, "정기점검", updated.CareStatus.String)

		_, err = customers.Update(ctx, uuid.New(), nil, &care)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})

	t.Run("customer list filters and pages", func(t *testing.T) {
		require.NotNil(t, stored)
		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		for i, name := range []string{"골목카페", "골목_주점"} {
			require.NoError(t, customers.CreateWithTx(ctx, tx, &customer.Customer{
				CustomerCode: fmt.Sprintf("CO00091%d", i),
				BusinessName: sql.NullString{String: name, Valid: true},
				Phone:        sql.NullString{String: fmt.Sprintf("0107777000%d", i), Valid: true},
				Status:       customer.StatusInactive,
			}))
		}
		require.NoError(t, tx.Commit(ctx))

		list, total, err := customers.List(ctx, customer.ListFilter{Search: "골목", Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, list, 2)

		list, total, err = customers.List(ctx, customer.ListFilter{Search: "골목", Status: customer.StatusActive, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, list, 1)
		assert.Equal(t, stored.ID, list[0].ID)

		_, total, err = customers.List(ctx, customer.ListFilter{Search: "_", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)

		list, total, err = customers.List(ctx, customer.ListFilter{Search: "77770001", Limit: 10, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "골목_주점", list[0].BusinessName.String)
	})

	t.Run("activities list newest first", func(t *testing.T) {
		require.NotNil(t, stored)
		base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

		tx, err := db.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		for i, typ := range []string{activity.TypeContractSigned, activity.TypeStatusChanged, activity.TypeContractSigned} {
			require.NoError(t, activities.CreateWithTx(ctx, tx, &activity.Activity{
				CustomerID:   stored.ID,
				ActivityType: typ,
				Title:        sql.NullString{String: typ, Valid: true},
				Data:         map[string]interface{}{"seq": i},
				CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			}))
		}
		require.NoError(t, tx.Commit(ctx))

		list, err := activities.ListByCustomer(ctx, stored.ID, 2, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
		assert.EqualValues(t, 2, list[0].Data["seq"])

		signed, err := activities.CountByType(ctx, stored.ID, activity.TypeContractSigned)
		require.NoError(t, err)
		assert.EqualValues(t, 2, signed)
	})
}
