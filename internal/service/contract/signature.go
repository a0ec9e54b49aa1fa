// internal/service/contract/signature.go
package contract

import (
	"context"
	"database/sql"
	"fmt"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"
	"bizcare-service/internal/pkg/isotime"

	"go.uber.org/zap"
)

const signatureMethodElectronic = "electronic"

// CompleteSignature marks the contract as signed and appends a
// contract_signed activity in the same transaction. The contract moves to
// approved unless it is already past approval. Signing again keeps the
// status but writes another activity row.
func (s *ContractService) CompleteSignature(ctx context.Context, req *contract.SignContractRequest) (*contract.Detail, error) {
	if req == nil {
		return nil, xerrors.InvalidInput("request body is required")
	}
	if req.ContractID == "" {
		return nil, xerrors.Validation([]string{"contract_id"})
	}
	id, err := parseContractID(req.ContractID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	signedAt := now
	if req.SignedAt != nil && !req.SignedAt.IsZero() {
		signedAt = *req.SignedAt
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, xerrors.Persistence("failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	current, err := s.contracts.FindForUpdateWithTx(ctx, tx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("contract not found")
		}
		return nil, xerrors.Persistence("failed to load contract", err)
	}
	target := contract.StatusApproved
	if current.Status.PastApproval() {
		target = current.Status
	}

	res, err := s.contracts.SignWithTx(ctx, tx, id, target, signedAt, now)
	if err != nil {
		if isNotFound(err) {
			return nil, xerrors.NotFound("contract not found")
		}
		s.logger.Error("failed to sign contract", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to save signature", err)
	}
	if !res.CustomerID.Valid {
		return nil, xerrors.Persistence("contract has no customer to record the signature against", nil)
	}

	a := &activity.Activity{
		CustomerID:   res.CustomerID.UUID,
		ActivityType: activity.TypeContractSigned,
		Title:        sql.NullString{String: "계약서 전자서명 완료", Valid: true},
		Description:  sql.NullString{String: fmt.Sprintf("계약번호 %s 전자서명 완료", res.ContractNumber.String), Valid: true},
		Data: map[string]interface{}{
			"contract_id":      id.String(),
			"signed_at":        isotime.Format(signedAt),
			"signature_method": signatureMethodElectronic,
		},
		CreatedAt: now,
	}
	if err := s.activities.CreateWithTx(ctx, tx, a); err != nil {
		s.logger.Error("failed to record signature activity", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to record signature", err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("failed to commit signature", zap.Error(err))
		return nil, xerrors.Persistence("failed to save signature", err)
	}

	s.logger.Info("contract signed",
		zap.String("contract_id", id.String()),
		zap.String("customer_id", res.CustomerID.UUID.String()),
		zap.String("status", res.Status.String()),
		zap.Time("signed_at", signedAt),
	)

	s.publisher.Publish(ctx, contract.Event{
		Type:           contract.EventSigned,
		ContractID:     id.String(),
		CustomerID:     res.CustomerID.UUID.String(),
		ContractNumber: res.ContractNumber.String,
		Status:         res.Status,
		OccurredAt:     now,
	})

	return s.loadDetail(ctx, id)
}
