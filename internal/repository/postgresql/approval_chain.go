package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/domain/leave"
	"github.com/yayasan-cendekia/hrops-backend-go/internal/pkg/database"
)

type approvalChainRepository struct {
	db *database.DB
}

func NewApprovalChainRepository(db *database.DB) leave.ApprovalChainRepository {
	return &approvalChainRepository{db: db}
}

func (r *approvalChainRepository) GetByRequesterRole(ctx context.Context, requesterRole string) (leave.ApprovalChain, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT approver_role
		FROM approval_chains
		WHERE requester_role = $1
		ORDER BY stage_index
	`, requesterRole)
	if err != nil {
		return leave.ApprovalChain{}, fmt.Errorf("failed to get approval chain: %w", err)
	}
	defer rows.Close()

	chain := leave.ApprovalChain{RequesterRole: requesterRole}
	for rows.Next() {
		var stage string
		if err := rows.Scan(&stage); err != nil {
			return leave.ApprovalChain{}, fmt.Errorf("failed to scan approval chain row: %w", err)
		}
		chain.Stages = append(chain.Stages, stage)
	}
	if err := rows.Err(); err != nil {
		return leave.ApprovalChain{}, fmt.Errorf("failed to iterate approval chain rows: %w", err)
	}

	if len(chain.Stages) == 0 {
		return leave.ApprovalChain{}, leave.ErrApprovalChainNotConfigured
	}
	return chain, nil
}

func (r *approvalChainRepository) ListAll(ctx context.Context) ([]leave.ApprovalChain, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `
		SELECT requester_role, approver_role
		FROM approval_chains
		ORDER BY requester_role, stage_index
	`)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list approval chains: %w", err)
	}
	defer rows.Close()

	var chains []leave.ApprovalChain
	for rows.Next() {
		var requesterRole, approverRole string
		if err := rows.Scan(&requesterRole, &approverRole); err != nil {
			return nil, fmt.Errorf("failed to scan approval chain row: %w", err)
		}
		if len(chains) == 0 || chains[len(chains)-1].RequesterRole != requesterRole {
			chains = append(chains, leave.ApprovalChain{RequesterRole: requesterRole})
		}
		last := &chains[len(chains)-1]
		last.Stages = append(last.Stages, approverRole)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate approval chain rows: %w", err)
	}

	return chains, nil
}

// Seed inserts the default chains on first boot. ON CONFLICT DO NOTHING keeps
// operator-edited configuration intact across restarts.
func (r *approvalChainRepository) Seed(ctx context.Context, chains []leave.ApprovalChain) error {
	q := r.db.Querier(ctx)

	for _, chain := range chains {
		for i, stage := range chain.Stages {
			_, err := q.Exec(ctx, `
				INSERT INTO approval_chains (requester_role, stage_index, approver_role)
				VALUES ($1, $2, $3)
				ON CONFLICT (requester_role, stage_index) DO NOTHING
			`, chain.RequesterRole, i, stage)
			if err != nil {
				return fmt.Errorf("failed to seed approval chain for %s: %w", chain.RequesterRole, err)
			}
		}
	}
	return nil
}
