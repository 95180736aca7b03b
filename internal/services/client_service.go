package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

// ClientListResult is a page of clients plus the total match count.
type ClientListResult struct {
	Clients  []models.Client `json:"clients"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ClientService manages the clinic's customer records.
type ClientService interface {
	CreateClient(executor repositories.SQLExecutor, client *models.Client) error
	GetClientByID(executor repositories.SQLExecutor, id int64) (*models.Client, error)
	ListClients(executor repositories.SQLExecutor, search string, page, pageSize int) (*ClientListResult, error)
	UpdateClient(executor repositories.SQLExecutor, client *models.Client) error
	DeleteClient(executor repositories.SQLExecutor, id int64) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clientRepo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func validateClient(client *models.Client) error {
	if utils.IsEmpty(client.FullName) || utils.IsEmpty(client.Email) || utils.IsEmpty(client.PhoneNumber) {
		return fmt.Errorf("%w: full name, email and phone are required", ErrValidation)
	}
	if !utils.IsValidEmail(client.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

func (s *clientService) CreateClient(executor repositories.SQLExecutor, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	client.LoyaltyPoints = 0
	client.LoyaltyTier = models.TierBronze
	client.TotalSpent = 0

	_, err := s.clientRepo.CreateClient(executor, client)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrEmailExists
	}
	return err
}

func (s *clientService) GetClientByID(executor repositories.SQLExecutor, id int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// ListClients filters and paginates in memory. PII is encrypted at rest, so
// name and email matching can only happen after the repository opens the
// records.
func (s *clientService) ListClients(executor repositories.SQLExecutor, search string, page, pageSize int) (*ClientListResult, error) {
	clients, err := s.clientRepo.GetAllClients(executor)
	if err != nil {
		return nil, err
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := clients[:0]
		for _, client := range clients {
			if strings.Contains(strings.ToLower(client.FullName), needle) ||
				strings.Contains(strings.ToLower(client.Email), needle) ||
				strings.Contains(client.PhoneNumber, search) {
				filtered = append(filtered, client)
			}
		}
		clients = filtered
	}

	sort.Slice(clients, func(i, j int) bool {
		return strings.ToLower(clients[i].FullName) < strings.ToLower(clients[j].FullName)
	})

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	total := len(clients)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &ClientListResult{
		Clients:  clients[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *clientService) UpdateClient(executor repositories.SQLExecutor, client *models.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}

	existing, err := s.clientRepo.GetClientByID(executor, client.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Loyalty fields are managed by the loyalty service, never by edits.
	client.LoyaltyPoints = existing.LoyaltyPoints
	client.LoyaltyTier = existing.LoyaltyTier
	client.TotalSpent = existing.TotalSpent

	err = s.clientRepo.UpdateClient(executor, client)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrEmailExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *clientService) DeleteClient(executor repositories.SQLExecutor, id int64) error {
	err := s.clientRepo.DeleteClient(executor, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repositories.ErrForeignKeyViolation) {
		return fmt.Errorf("%w: client has appointments", ErrValidation)
	}
	return err
}
