package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"salao_backend/internal/database"
	"salao_backend/internal/models"
	"salao_backend/internal/providers"
	"salao_backend/internal/repositories"
	"salao_backend/pkg/utils"
)

const clinicCacheTTL = time.Hour

// Billing webhook event names as Asaas sends them.
const (
	WebhookPaymentReceived = "PAYMENT_RECEIVED"
	WebhookPaymentOverdue  = "PAYMENT_OVERDUE"
)

// ClinicRegistration is the signup payload for a new tenant.
type ClinicRegistration struct {
	ClinicName string `json:"clinic_name" binding:"required"`
	Document   string `json:"document" binding:"required"`
	Plan       string `json:"plan" binding:"required"`
	OwnerName  string `json:"owner_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// ClinicService manages tenants: registration with schema provisioning and
// billing setup, cached lookups and webhook-driven status flips.
type ClinicService interface {
	RegisterClinic(registration ClinicRegistration) (*models.Clinic, string, error)
	GetClinic(id uuid.UUID) (*models.Clinic, error)
	ProcessBillingWebhook(event, customerID string) error
}

type clinicService struct {
	clinicRepo     repositories.ClinicRepository
	billing        providers.BillingProvider
	cache          *redis.Client
	db             *sql.DB
	dbConfig       database.Config
	migrationsPath string
}

// NewClinicService creates a new instance of ClinicService.
func NewClinicService(
	clinicRepo repositories.ClinicRepository,
	billing providers.BillingProvider,
	cache *redis.Client,
	db *sql.DB,
	dbConfig database.Config,
	migrationsPath string,
) ClinicService {
	return &clinicService{
		clinicRepo:     clinicRepo,
		billing:        billing,
		cache:          cache,
		db:             db,
		dbConfig:       dbConfig,
		migrationsPath: migrationsPath,
	}
}

func clinicCacheKey(id uuid.UUID) string {
	return "clinic:" + id.String()
}

// RegisterClinic creates the tenant row, provisions its schema and sets up
// billing. It returns the payment URL of the first invoice when billing is
// live.
func (s *clinicService) RegisterClinic(registration ClinicRegistration) (*models.Clinic, string, error) {
	if registration.Plan != models.PlanBasico && registration.Plan != models.PlanPremium {
		return nil, "", fmt.Errorf("%w: unknown plan %q", ErrValidation, registration.Plan)
	}

	if _, err := s.clinicRepo.GetClinicByDocument(registration.Document); err == nil {
		return nil, "", ErrDocumentExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", err
	}

	clinic := &models.Clinic{
		Name:        registration.ClinicName,
		Document:    registration.Document,
		Plan:        registration.Plan,
		Status:      models.ClinicStatusActive,
		RenewalDate: time.Now().AddDate(0, 1, 0),
	}
	if err := s.clinicRepo.CreateClinic(clinic); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, "", ErrDocumentExists
		}
		return nil, "", err
	}

	if err := database.ProvisionTenantSchema(s.db, s.dbConfig, clinic.SchemaName(), s.migrationsPath); err != nil {
		return nil, "", fmt.Errorf("provisioning schema for clinic %s: %w", clinic.ID, err)
	}

	customerID, err := s.billing.CreateCustomer(registration.ClinicName, registration.Document, registration.Email)
	if err != nil {
		utils.LogError(fmt.Errorf("creating billing customer for clinic %s: %w", clinic.ID, err))
		return clinic, "", nil
	}
	if err := s.clinicRepo.UpdateAsaasCustomer(clinic.ID, customerID); err != nil {
		return nil, "", err
	}
	clinic.AsaasCustomerID = &customerID

	subscription, err := s.billing.CreateSubscription(customerID, clinic.Plan, clinic.RenewalDate)
	if err != nil {
		utils.LogError(fmt.Errorf("creating subscription for clinic %s: %w", clinic.ID, err))
		return clinic, "", nil
	}
	return clinic, subscription.PaymentURL, nil
}

// GetClinic is a read-through cache: the tenant middleware calls this on
// every request, so clinic rows are kept hot in Redis.
func (s *clinicService) GetClinic(id uuid.UUID) (*models.Clinic, error) {
	ctx := context.Background()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, clinicCacheKey(id)).Result()
		if err == nil {
			clinic := &models.Clinic{}
			if err := json.Unmarshal([]byte(cached), clinic); err == nil {
				return clinic, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			utils.LogWarn(fmt.Sprintf("clinic cache read failed: %v", err))
		}
	}

	clinic, err := s.clinicRepo.GetClinicByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(clinic); err == nil {
			if err := s.cache.Set(ctx, clinicCacheKey(id), payload, clinicCacheTTL).Err(); err != nil {
				utils.LogWarn(fmt.Sprintf("clinic cache write failed: %v", err))
			}
		}
	}
	return clinic, nil
}

func (s *clinicService) invalidate(customerID string) {
	if s.cache == nil {
		return
	}
	// The webhook only carries the billing customer ID, so flush by scan.
	ctx := context.Background()
	iter := s.cache.Scan(ctx, 0, "clinic:*", 100).Iterator()
	for iter.Next(ctx) {
		s.cache.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		utils.LogWarn(fmt.Sprintf("clinic cache flush failed: %v", err))
	}
}

// ProcessBillingWebhook flips the tenant status on payment events. Unknown
// events are acknowledged and ignored.
func (s *clinicService) ProcessBillingWebhook(event, customerID string) error {
	var status string
	switch event {
	case WebhookPaymentReceived:
		status = models.ClinicStatusActive
	case WebhookPaymentOverdue:
		status = models.ClinicStatusSuspended
	default:
		utils.LogInfo(fmt.Sprintf("ignoring billing webhook event %s", event))
		return nil
	}

	if err := s.clinicRepo.UpdateStatusByAsaasCustomer(customerID, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidate(customerID)
	utils.LogInfo(fmt.Sprintf("clinic with billing customer %s set to %s", customerID, status))
	return nil
}
