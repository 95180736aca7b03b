package services

import (
	"errors"
	"fmt"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
)

// Tier thresholds in accumulated points.
const (
	tierPrataMin    = 500
	tierOuroMin     = 1000
	tierDiamanteMin = 2000
)

// TierForPoints maps an accumulated point total onto a loyalty tier.
func TierForPoints(points int) string {
	switch {
	case points >= tierDiamanteMin:
		return models.TierDiamante
	case points >= tierOuroMin:
		return models.TierOuro
	case points >= tierPrataMin:
		return models.TierPrata
	default:
		return models.TierBronze
	}
}

// NextTier returns the next tier above the given point total and how many
// points are missing. At the top tier both are zero values.
func NextTier(points int) (string, int) {
	switch {
	case points < tierPrataMin:
		return models.TierPrata, tierPrataMin - points
	case points < tierOuroMin:
		return models.TierOuro, tierOuroMin - points
	case points < tierDiamanteMin:
		return models.TierDiamante, tierDiamanteMin - points
	default:
		return "", 0
	}
}

// LoyaltyService manages loyalty points, tiers and rewards.
type LoyaltyService interface {
	GetProgram(executor repositories.SQLExecutor) ([]models.LoyaltyProgram, error)
	GetClientProgram(executor repositories.SQLExecutor, clientID int64) (*models.LoyaltyProgram, error)
	AddPoints(executor repositories.SQLExecutor, clientID int64, points int) (*models.Client, error)
	RedeemReward(executor repositories.SQLExecutor, clientID, rewardID int64) (*models.Client, error)
	GetRewards(executor repositories.SQLExecutor, activeOnly bool) ([]models.Reward, error)
	CreateReward(executor repositories.SQLExecutor, reward *models.Reward) error
	UpdateReward(executor repositories.SQLExecutor, reward *models.Reward) error
	DeleteReward(executor repositories.SQLExecutor, id int64) error
}

type loyaltyService struct {
	clientRepo repositories.ClientRepository
	rewardRepo repositories.RewardRepository
}

// NewLoyaltyService creates a new instance of LoyaltyService.
func NewLoyaltyService(clientRepo repositories.ClientRepository, rewardRepo repositories.RewardRepository) LoyaltyService {
	return &loyaltyService{clientRepo: clientRepo, rewardRepo: rewardRepo}
}

func programFor(client *models.Client) models.LoyaltyProgram {
	nextLevel, missing := NextTier(client.LoyaltyPoints)
	return models.LoyaltyProgram{
		ClientID:          client.ID,
		Name:              client.FullName,
		Points:            client.LoyaltyPoints,
		Level:             TierForPoints(client.LoyaltyPoints),
		TotalSpent:        client.TotalSpent,
		NextLevel:         nextLevel,
		PointsToNextLevel: missing,
	}
}

func (s *loyaltyService) GetProgram(executor repositories.SQLExecutor) ([]models.LoyaltyProgram, error) {
	clients, err := s.clientRepo.GetAllClients(executor)
	if err != nil {
		return nil, err
	}
	programs := make([]models.LoyaltyProgram, 0, len(clients))
	for i := range clients {
		programs = append(programs, programFor(&clients[i]))
	}
	return programs, nil
}

func (s *loyaltyService) GetClientProgram(executor repositories.SQLExecutor, clientID int64) (*models.LoyaltyProgram, error) {
	client, err := s.clientRepo.GetClientByID(executor, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	program := programFor(client)
	return &program, nil
}

func (s *loyaltyService) AddPoints(executor repositories.SQLExecutor, clientID int64, points int) (*models.Client, error) {
	if points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", ErrValidation)
	}
	client, err := s.clientRepo.GetClientByID(executor, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	client.LoyaltyPoints += points
	client.LoyaltyTier = TierForPoints(client.LoyaltyPoints)
	if err := s.clientRepo.UpdateLoyalty(executor, client.ID, client.LoyaltyPoints, client.LoyaltyTier); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *loyaltyService) RedeemReward(executor repositories.SQLExecutor, clientID, rewardID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(executor, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	reward, err := s.rewardRepo.GetRewardByID(executor, rewardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !reward.IsActive {
		return nil, fmt.Errorf("%w: reward is inactive", ErrValidation)
	}
	if client.LoyaltyPoints < reward.PointsCost {
		return nil, fmt.Errorf("%w: insufficient points", ErrValidation)
	}

	client.LoyaltyPoints -= reward.PointsCost
	// Redeeming spends points but never demotes the earned tier.
	if err := s.clientRepo.UpdateLoyalty(executor, client.ID, client.LoyaltyPoints, client.LoyaltyTier); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *loyaltyService) GetRewards(executor repositories.SQLExecutor, activeOnly bool) ([]models.Reward, error) {
	return s.rewardRepo.GetRewards(executor, activeOnly)
}

func (s *loyaltyService) CreateReward(executor repositories.SQLExecutor, reward *models.Reward) error {
	if reward.Name == "" || reward.PointsCost <= 0 {
		return fmt.Errorf("%w: name and positive points cost are required", ErrValidation)
	}
	_, err := s.rewardRepo.CreateReward(executor, reward)
	return err
}

func (s *loyaltyService) UpdateReward(executor repositories.SQLExecutor, reward *models.Reward) error {
	if err := s.rewardRepo.UpdateReward(executor, reward); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *loyaltyService) DeleteReward(executor repositories.SQLExecutor, id int64) error {
	if err := s.rewardRepo.DeleteReward(executor, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
