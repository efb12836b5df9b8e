package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/Claimsadministration/internal/domain/entities"
	"github.com/zatekoja/Claimsadministration/internal/domain/repositories"
)

// Mocks

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entities.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*entities.Member, error) {
	args := m.Called(ctx, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *entities.Member) error {
	return nil
}

func (m *MockMemberRepository) List(ctx context.Context, filter repositories.MemberFilter) ([]*entities.Member, error) {
	return nil, nil
}

type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) Create(ctx context.Context, policy *entities.Policy) error {
	return nil
}

func (m *MockPolicyRepository) GetByID(ctx context.Context, id string) (*entities.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Policy), args.Error(1)
}

func (m *MockPolicyRepository) GetByNumber(ctx context.Context, policyNumber string) (*entities.Policy, error) {
	args := m.Called(ctx, policyNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Policy), args.Error(1)
}

func (m *MockPolicyRepository) Update(ctx context.Context, policy *entities.Policy) error {
	return nil
}

func (m *MockPolicyRepository) List(ctx context.Context, filter repositories.PolicyFilter) ([]*entities.Policy, error) {
	return nil, nil
}

func (m *MockPolicyRepository) GetBenefitConfiguration(ctx context.Context, id string) (*entities.BenefitConfiguration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BenefitConfiguration), args.Error(1)
}

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) Create(ctx context.Context, claim *entities.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) GetByID(ctx context.Context, id string) (*entities.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Claim), args.Error(1)
}

func (m *MockClaimRepository) UpdateStatus(ctx context.Context, claim *entities.Claim, expectedVersion int) error {
	args := m.Called(ctx, claim, expectedVersion)
	return args.Error(0)
}

func (m *MockClaimRepository) SumApprovedAmount(ctx context.Context, memberID, serviceCode string, from, to time.Time) (float64, error) {
	args := m.Called(ctx, memberID, serviceCode, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockClaimRepository) CountApproved(ctx context.Context, memberID, serviceCode string, from, to time.Time) (int, error) {
	args := m.Called(ctx, memberID, serviceCode, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockClaimRepository) List(ctx context.Context, filter repositories.ClaimFilter) ([]*entities.Claim, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Claim), args.Error(1)
}

type MockPreAuthRepository struct {
	mock.Mock
}

func (m *MockPreAuthRepository) Create(ctx context.Context, preAuth *entities.PreAuthorization) error {
	args := m.Called(ctx, preAuth)
	return args.Error(0)
}

func (m *MockPreAuthRepository) GetByID(ctx context.Context, id string) (*entities.PreAuthorization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PreAuthorization), args.Error(1)
}

func (m *MockPreAuthRepository) UpdateStatus(ctx context.Context, preAuth *entities.PreAuthorization, expectedVersion int) error {
	args := m.Called(ctx, preAuth, expectedVersion)
	return args.Error(0)
}

func (m *MockPreAuthRepository) ListApprovedExpiring(ctx context.Context, cutoff time.Time) ([]*entities.PreAuthorization, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PreAuthorization), args.Error(1)
}

func (m *MockPreAuthRepository) List(ctx context.Context, filter repositories.PreAuthFilter) ([]*entities.PreAuthorization, error) {
	return nil, nil
}

type MockDecisionRecorder struct {
	mock.Mock
}

func (m *MockDecisionRecorder) RecordDecision(ctx context.Context, result *entities.EligibilityResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockDecisionRecorder) RecordTransition(ctx context.Context, entityType, entityID, fromStatus, toStatus string, actor entities.ActorRole) error {
	args := m.Called(ctx, entityType, entityID, fromStatus, toStatus, actor)
	return args.Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.StatusEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.StatusEvent, error) {
	return nil, nil
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return nil
}

func (m *MockEventBus) Close() error {
	return nil
}
