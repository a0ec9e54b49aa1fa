// internal/service/contract/status.go
package contract

import (
	"context"
	"database/sql"
	"fmt"

	"bizcare-service/internal/domain/activity"
	"bizcare-service/internal/domain/contract"
	xerrors "bizcare-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Actor is the manager performing an administrative change.
type Actor struct {
	ID      string
	Name    string
	IsAdmin bool
}

// ChangeStatus moves a contract along the status machine. Override skips the
// transition table and is reserved for admins. Moving to active stamps the
// service period when it is not set yet.
func (s *ContractService) ChangeStatus(ctx context.Context, contractID string, req *contract.ChangeStatusRequest, actor Actor) (*contract.Detail, error) {
	if req == nil {
		return nil, xerrors.InvalidInput("request body is required")
	}
	if err := validateRequired(req); err != nil {
		return nil, err
	}
	if !req.Status.Valid() {
		return nil, xerrors.InvalidInput(fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.Override && !actor.IsAdmin {
		return nil, fmt.Errorf("status override requires the admin role: %w", xerrors.ErrForbidden)
	}
	id, err := parseContractID(contractID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

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

	previous := current.Status
	if previous == req.Status {
		return nil, xerrors.Conflict(fmt.Sprintf("contract is already %s", previous))
	}
	if !req.Override && !previous.CanTransitionTo(req.Status) {
		return nil, xerrors.Conflict(fmt.Sprintf("cannot move contract from %s to %s", previous, req.Status))
	}

	var startDate, endDate sql.NullTime
	if req.Status == contract.StatusActive && !current.StartDate.Valid {
		months := current.ContractPeriod.Int64
		if !current.ContractPeriod.Valid || months <= 0 {
			months = contract.DefaultContractPeriod
		}
		startDate = sql.NullTime{Time: now, Valid: true}
		endDate = sql.NullTime{Time: now.AddDate(0, int(months), 0), Valid: true}
	}

	if err := s.contracts.UpdateStatusWithTx(ctx, tx, id, req.Status, startDate, endDate, now); err != nil {
		s.logger.Error("failed to update contract status", zap.String("contract_id", id.String()), zap.Error(err))
		return nil, xerrors.Persistence("failed to update status", err)
	}

	// Contracts from the legacy intake may have no customer; they get no
	// timeline entry.
	if current.CustomerID.Valid {
		data := map[string]interface{}{
			"contract_id":     id.String(),
			"previous_status": previous.String(),
			"new_status":      req.Status.String(),
			"override":        req.Override,
			"changed_by":      actor.Name,
		}
		if req.Reason != "" {
			data["reason"] = req.Reason
		}
		a := &activity.Activity{
			CustomerID:   current.CustomerID.UUID,
			ActivityType: activity.TypeStatusChanged,
			Title:        sql.NullString{String: "계약 상태 변경", Valid: true},
			Description: sql.NullString{
				String: fmt.Sprintf("계약번호 %s 상태 변경: %s → %s", current.ContractNumber.String, previous, req.Status),
				Valid:  true,
			},
			Data:      data,
			CreatedAt: now,
		}
		if err := s.activities.CreateWithTx(ctx, tx, a); err != nil {
			s.logger.Error("failed to record status activity", zap.String("contract_id", id.String()), zap.Error(err))
			return nil, xerrors.Persistence("failed to record status change", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		s.logger.Error("failed to commit status change", zap.Error(err))
		return nil, xerrors.Persistence("failed to update status", err)
	}

	s.logger.Info("contract status changed",
		zap.String("contract_id", id.String()),
		zap.String("from", previous.String()),
		zap.String("to", req.Status.String()),
		zap.Bool("override", req.Override),
		zap.String("actor_id", actor.ID),
	)

	evt := contract.Event{
		Type:           contract.EventStatusChanged,
		ContractID:     id.String(),
		CustomerNumber: current.CustomerNumber.String,
		ContractNumber: current.ContractNumber.String,
		Status:         req.Status,
		PreviousStatus: previous,
		OccurredAt:     now,
	}
	if current.CustomerID.Valid {
		evt.CustomerID = current.CustomerID.UUID.String()
	}
	s.publisher.Publish(ctx, evt)

	return s.loadDetail(ctx, id)
}
