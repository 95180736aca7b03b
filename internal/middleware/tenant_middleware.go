package middleware

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/internal/tenantdb"
	"salao_backend/pkg/utils"
)

const tenantDBKey = "tenant_db"

// TenantMiddleware resolves the caller's clinic, enforces the subscription
// status and binds the tenant schema pool to the request. Must run after
// AuthMiddleware.
func TenantMiddleware(clinicService services.ClinicService, registry *tenantdb.Registry, paymentURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		clinicID, err := uuid.Parse(c.GetString("clinic_id"))
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Token is not bound to a clinic", ""))
			c.Abort()
			return
		}

		clinic, err := clinicService.GetClinic(clinicID)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Clinic not found", ""))
			c.Abort()
			return
		}

		if clinic.Status != models.ClinicStatusActive {
			c.JSON(http.StatusForbidden, gin.H{
				"error":      "Clínica suspensa. Regularize seu pagamento.",
				"paymentUrl": paymentURL,
			})
			c.Abort()
			return
		}

		db, err := registry.Get(clinic.SchemaName())
		if err != nil {
			utils.LogError(fmt.Errorf("opening tenant pool for clinic %s: %w", clinic.ID, err))
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Could not reach clinic data", ""))
			c.Abort()
			return
		}

		c.Set(tenantDBKey, db)
		c.Next()
	}
}

// TenantDB returns the tenant schema pool bound by TenantMiddleware.
func TenantDB(c *gin.Context) *sql.DB {
	value, ok := c.Get(tenantDBKey)
	if !ok {
		return nil
	}
	db, _ := value.(*sql.DB)
	return db
}
