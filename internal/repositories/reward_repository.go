package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salao_backend/internal/models"
)

// RewardRepository defines loyalty-reward database operations.
type RewardRepository interface {
	CreateReward(executor SQLExecutor, reward *models.Reward) (int64, error)
	GetRewardByID(executor SQLExecutor, id int64) (*models.Reward, error)
	GetRewards(executor SQLExecutor, activeOnly bool) ([]models.Reward, error)
	UpdateReward(executor SQLExecutor, reward *models.Reward) error
	DeleteReward(executor SQLExecutor, id int64) error
}

type rewardRepository struct{}

// NewRewardRepository creates a new instance of RewardRepository.
func NewRewardRepository() RewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) CreateReward(executor SQLExecutor, reward *models.Reward) (int64, error) {
	now := time.Now()
	reward.CreatedAt = now
	reward.UpdatedAt = now

	query := `INSERT INTO recompensas (name, points_cost, description, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	err := executor.QueryRow(query,
		reward.Name, reward.PointsCost, reward.Description, reward.IsActive,
		reward.CreatedAt, reward.UpdatedAt,
	).Scan(&reward.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating reward")
	}
	return reward.ID, nil
}

func (r *rewardRepository) GetRewardByID(executor SQLExecutor, id int64) (*models.Reward, error) {
	reward := &models.Reward{}
	query := `SELECT id, name, points_cost, description, is_active, created_at, updated_at
	          FROM recompensas WHERE id = $1`
	err := executor.QueryRow(query, id).Scan(
		&reward.ID, &reward.Name, &reward.PointsCost, &reward.Description,
		&reward.IsActive, &reward.CreatedAt, &reward.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting reward by ID %d: %v", ErrDatabaseError, id, err)
	}
	return reward, nil
}

func (r *rewardRepository) GetRewards(executor SQLExecutor, activeOnly bool) ([]models.Reward, error) {
	query := `SELECT id, name, points_cost, description, is_active, created_at, updated_at FROM recompensas`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY points_cost ASC`

	rows, err := executor.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rewards: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rewards := []models.Reward{}
	for rows.Next() {
		var reward models.Reward
		if err := rows.Scan(
			&reward.ID, &reward.Name, &reward.PointsCost, &reward.Description,
			&reward.IsActive, &reward.CreatedAt, &reward.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning reward: %v", ErrDatabaseError, err)
		}
		rewards = append(rewards, reward)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reward rows: %v", ErrDatabaseError, err)
	}
	return rewards, nil
}

func (r *rewardRepository) UpdateReward(executor SQLExecutor, reward *models.Reward) error {
	reward.UpdatedAt = time.Now()
	query := `UPDATE recompensas SET
	            name = $1, points_cost = $2, description = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`
	result, err := executor.Exec(query,
		reward.Name, reward.PointsCost, reward.Description, reward.IsActive,
		reward.UpdatedAt, reward.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating reward ID %d", reward.ID))
	}
	return requireRowsAffected(result, "updating reward")
}

func (r *rewardRepository) DeleteReward(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM recompensas WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting reward ID %d", id))
	}
	return requireRowsAffected(result, "deleting reward")
}
