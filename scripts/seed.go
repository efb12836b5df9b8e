package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/Claimsadministration/internal/adapters/database"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Claimsadministration/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	memberRepo := database.NewMemberAdapter(pgClient)
	policyRepo := database.NewPolicyAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				audit_log,
				pre_authorizations,
				claims,
				members,
				policies,
				coverage_rules,
				benefit_configurations,
				providers,
				employers
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now()

	// 1. Seed Employers
	employers := []entities.Employer{
		{ID: uuid.New().String(), Name: "Gulf Logistics Co", Code: "GULFLOG", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "National Bank", Code: "NATBANK", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, e := range employers {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO employers (id, name, code, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.ID, e.Name, e.Code, e.IsActive, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			log.Printf("Failed to create employer %s: %v", e.Name, err)
		}
	}

	// 2. Seed Providers
	medProviders := []entities.Provider{
		{ID: uuid.New().String(), Name: "City General Hospital", Code: "CITYGEN", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Al Noor Dental Clinic", Code: "ALNOOR", IsActive: true, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Name: "Wellcare Pharmacy", Code: "WELLCARE", IsActive: true, CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range medProviders {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO providers (id, name, code, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.Name, p.Code, p.IsActive, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			log.Printf("Failed to create provider %s: %v", p.Name, err)
		}
	}

	// 3. Seed Benefit Configurations with coverage rules
	standardConfigID := uuid.New().String()
	_, err = pgClient.DB().ExecContext(ctx, `
		INSERT INTO benefit_configurations (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, standardConfigID, "Standard Corporate Plan", true, now, now)
	if err != nil {
		log.Printf("Failed to create benefit configuration: %v", err)
	}

	dentalImplantService := "SVC-DENT-IMPLANT"
	rules := []entities.CoverageRule{
		{
			ID:                     uuid.New().String(),
			BenefitConfigurationID: standardConfigID,
			Target:                 entities.CoverageRuleTargetCategory,
			CategoryID:             "CAT-OUTPATIENT",
			CoveragePercent:        80,
			AmountLimit:            floatPtr(5000),
			IsActive:               true,
		},
		{
			ID:                     uuid.New().String(),
			BenefitConfigurationID: standardConfigID,
			Target:                 entities.CoverageRuleTargetCategory,
			CategoryID:             "CAT-DENTAL",
			CoveragePercent:        50,
			AmountLimit:            floatPtr(1500),
			CountLimit:             intPtr(6),
			WaitingPeriodDays:      intPtr(90),
			IsActive:               true,
		},
		{
			ID:                     uuid.New().String(),
			BenefitConfigurationID: standardConfigID,
			Target:                 entities.CoverageRuleTargetService,
			CategoryID:             "CAT-DENTAL",
			ServiceID:              &dentalImplantService,
			CoveragePercent:        30,
			AmountLimit:            floatPtr(800),
			RequiresPreApproval:    true,
			IsActive:               true,
		},
		{
			ID:                     uuid.New().String(),
			BenefitConfigurationID: standardConfigID,
			Target:                 entities.CoverageRuleTargetCategory,
			CategoryID:             "CAT-INPATIENT",
			CoveragePercent:        100,
			AmountLimit:            floatPtr(50000),
			RequiresPreApproval:    true,
			IsActive:               true,
		},
	}
	for _, r := range rules {
		_, err := pgClient.DB().ExecContext(ctx, `
			INSERT INTO coverage_rules (
				id, benefit_configuration_id, target, category_id, service_id,
				coverage_percent, amount_limit, count_limit, waiting_period_days,
				requires_pre_approval, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, r.ID, r.BenefitConfigurationID, r.Target, r.CategoryID, r.ServiceID,
			r.CoveragePercent, r.AmountLimit, r.CountLimit, r.WaitingPeriodDays,
			r.RequiresPreApproval, r.IsActive, now, now)
		if err != nil {
			log.Printf("Failed to create coverage rule for %s: %v", r.CategoryID, err)
		}
	}

	// 4. Seed Policies
	policyStart := now.AddDate(0, -6, 0)
	policyEnd := now.AddDate(0, 6, 0)
	policies := []entities.Policy{
		{
			ID:                     uuid.New().String(),
			PolicyNumber:           "POL-2026-0001",
			EmployerID:             employers[0].ID,
			Status:                 entities.PolicyStatusActive,
			StartDate:              &policyStart,
			EndDate:                &policyEnd,
			BenefitConfigurationID: &standardConfigID,
			IsActive:               true,
			CreatedAt:              now,
			UpdatedAt:              now,
		},
		{
			ID:                     uuid.New().String(),
			PolicyNumber:           "POL-2026-0002",
			EmployerID:             employers[1].ID,
			Status:                 entities.PolicyStatusActive,
			StartDate:              &policyStart,
			BenefitConfigurationID: &standardConfigID,
			IsActive:               true,
			CreatedAt:              now,
			UpdatedAt:              now,
		},
	}
	for i := range policies {
		if err := policyRepo.Create(ctx, &policies[i]); err != nil {
			log.Printf("Failed to create policy %s: %v", policies[i].PolicyNumber, err)
		}
	}

	// 5. Seed Members
	enrollment := now.AddDate(0, -5, 0)
	members := []entities.Member{
		{
			ID:             uuid.New().String(),
			CivilID:        "287041234567",
			CardNumber:     "CARD-0001",
			FirstName:      "Fatima",
			LastName:       "Al-Sayed",
			Status:         entities.MemberStatusActive,
			PolicyID:       &policies[0].ID,
			EmployerID:     employers[0].ID,
			EnrollmentDate: &enrollment,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             uuid.New().String(),
			CivilID:        "290085556789",
			CardNumber:     "CARD-0002",
			FirstName:      "Omar",
			LastName:       "Hassan",
			Status:         entities.MemberStatusActive,
			PolicyID:       &policies[0].ID,
			EmployerID:     employers[0].ID,
			EnrollmentDate: &enrollment,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:             uuid.New().String(),
			CivilID:        "275129998877",
			CardNumber:     "CARD-0003",
			FirstName:      "Layla",
			LastName:       "Mahmoud",
			Status:         entities.MemberStatusSuspended,
			PolicyID:       &policies[1].ID,
			EmployerID:     employers[1].ID,
			EnrollmentDate: &enrollment,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
	for i := range members {
		if err := memberRepo.Create(ctx, &members[i]); err != nil {
			log.Printf("Failed to create member %s: %v", members[i].CardNumber, err)
		}
	}

	log.Printf("Seeding complete: %d employers, %d providers, 1 benefit configuration, %d policies, %d members",
		len(employers), len(medProviders), len(policies), len(members))
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
