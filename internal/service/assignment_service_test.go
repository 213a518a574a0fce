package service_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/hypetribe/engagement-backend/internal/engine"
	appErrors "github.com/hypetribe/engagement-backend/internal/errors"
	"github.com/hypetribe/engagement-backend/internal/model"
	"github.com/hypetribe/engagement-backend/internal/service"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

// Mock repositories

type MockCampaignRepo struct {
	campaigns map[int]*model.Campaign
	statuses  []string
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error {
	c.ID = len(m.campaigns) + 1
	c.CreatedAt = testNow
	m.campaigns[c.ID] = c
	return nil
}

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %d not found", id)
	}
	return c, nil
}

func (m *MockCampaignRepo) ListCampaigns(offset, limit int, status, pkg string) ([]*model.Campaign, int, error) {
	return []*model.Campaign{}, 0, nil
}

func (m *MockCampaignRepo) UpdateStatus(id int, status string) error {
	m.statuses = append(m.statuses, status)
	if c, ok := m.campaigns[id]; ok {
		c.Status = status
	}
	return nil
}

func (m *MockCampaignRepo) AddEngagement(id, delta int) error {
	if c, ok := m.campaigns[id]; ok {
		c.TotalEngagement += delta
	}
	return nil
}

type MockParticipantRepo struct {
	pool    []model.Participant
	touched []int
}

func (m *MockParticipantRepo) Create(p *model.Participant) error { return nil }
func (m *MockParticipantRepo) GetByID(id int) (*model.Participant, error) {
	for i := range m.pool {
		if m.pool[i].ID == id {
			return &m.pool[i], nil
		}
	}
	return nil, fmt.Errorf("participant %d not found", id)
}
func (m *MockParticipantRepo) ListActive() ([]model.Participant, error) { return m.pool, nil }
func (m *MockParticipantRepo) SetHandleVerified(id int) error           { return nil }
func (m *MockParticipantRepo) CompleteProfile(id int, label, spendingPower string, authenticityScore int, recommendedTypes []string) error {
	return nil
}
func (m *MockParticipantRepo) TouchParticipation(id int, at time.Time) error {
	m.touched = append(m.touched, id)
	return nil
}
func (m *MockParticipantRepo) Deactivate(id int) error { return nil }

type MockAssignmentRepo struct {
	created []model.Assignment
}

func (m *MockAssignmentRepo) Create(a *model.Assignment) error {
	a.ID = len(m.created) + 1
	m.created = append(m.created, *a)
	return nil
}

func (m *MockAssignmentRepo) GetByID(id int) (*model.Assignment, error) {
	for i := range m.created {
		if m.created[i].ID == id {
			return &m.created[i], nil
		}
	}
	return nil, nil
}

func (m *MockAssignmentRepo) ListByCampaign(campaignID int) ([]model.Assignment, error) {
	return m.created, nil
}

func (m *MockAssignmentRepo) UpdateStatus(id int, status string) error { return nil }

func (m *MockAssignmentRepo) RecordEngagement(id, likes, retweets, replies, impressions int) error {
	return nil
}

func (m *MockAssignmentRepo) GetCampaignStats(campaignID int) (map[string]int, error) {
	return map[string]int{"pending": len(m.created)}, nil
}

func (m *MockAssignmentRepo) ParticipantIDs(campaignID int) ([]int, error) {
	ids := []int{}
	for _, a := range m.created {
		ids = append(ids, a.ParticipantID)
	}
	return ids, nil
}

type MockCooldownRepo struct {
	active   map[int]time.Time
	upserted []model.Cooldown
}

func (m *MockCooldownRepo) Upsert(c model.Cooldown) error {
	m.upserted = append(m.upserted, c)
	return nil
}

func (m *MockCooldownRepo) GetByParticipant(id int) (*model.Cooldown, error) { return nil, nil }

func (m *MockCooldownRepo) ActiveUntil(now time.Time) (map[int]time.Time, error) {
	if m.active == nil {
		return map[int]time.Time{}, nil
	}
	return m.active, nil
}

type MockNotifier struct {
	sent []int
	fail bool
}

func (n *MockNotifier) Notify(p model.Participant, message string) error {
	if n.fail {
		return fmt.Errorf("notify down")
	}
	n.sent = append(n.sent, p.ID)
	return nil
}

// Helpers

func testEngine() *engine.Engine {
	r := rand.New(rand.NewSource(1))
	e := engine.New()
	e.Now = func() time.Time { return testNow }
	e.Rand = r
	e.Content = &engine.StaticContentGenerator{Rand: r}
	return e
}

func testPool(n int) []model.Participant {
	pool := []model.Participant{}
	for i := 1; i <= n; i++ {
		last := testNow.Add(-72 * time.Hour)
		pool = append(pool, model.Participant{
			ID:                  i,
			Handle:              fmt.Sprintf("user%d", i),
			HandleVerified:      true,
			Active:              true,
			EngagementRate:      5,
			LastParticipationAt: &last,
			RegisteredAt:        testNow.Add(-90 * 24 * time.Hour),
		})
	}
	return pool
}

func newFixture(pool []model.Participant, c *model.Campaign) (*service.AssignmentService, *MockCampaignRepo, *MockAssignmentRepo, *MockCooldownRepo, *MockParticipantRepo, *MockNotifier) {
	campaignRepo := &MockCampaignRepo{campaigns: map[int]*model.Campaign{c.ID: c}}
	participantRepo := &MockParticipantRepo{pool: pool}
	assignmentRepo := &MockAssignmentRepo{}
	cooldownRepo := &MockCooldownRepo{}
	notifier := &MockNotifier{}

	svc := &service.AssignmentService{
		CampaignRepo:    campaignRepo,
		ParticipantRepo: participantRepo,
		AssignmentRepo:  assignmentRepo,
		CooldownRepo:    cooldownRepo,
		Engine:          testEngine(),
		Notifier:        notifier,
	}
	return svc, campaignRepo, assignmentRepo, cooldownRepo, participantRepo, notifier
}

func pendingCampaign() *model.Campaign {
	return &model.Campaign{
		ID:                    1,
		BrandName:             "Safilink",
		TargetAudience:        "tech savvy young professionals",
		Package:               "premium",
		Budget:                225000,
		DurationHours:         48,
		EstimatedParticipants: 40,
		Status:                "pending",
	}
}

func TestBuildAssignmentsHappyPath(t *testing.T) {
	svc, campaignRepo, assignmentRepo, cooldownRepo, participantRepo, notifier := newFixture(testPool(5), pendingCampaign())

	result, err := svc.BuildAssignments(1)
	if err != nil {
		t.Fatalf("BuildAssignments error: %v", err)
	}
	if result.Assigned != 5 {
		t.Fatalf("expected 5 assigned, got %d", result.Assigned)
	}
	if len(assignmentRepo.created) != 5 {
		t.Fatalf("expected 5 assignments created, got %d", len(assignmentRepo.created))
	}

	// One assignment per participant
	seen := map[int]bool{}
	for _, a := range assignmentRepo.created {
		if seen[a.ParticipantID] {
			t.Errorf("participant %d assigned twice", a.ParticipantID)
		}
		seen[a.ParticipantID] = true
		if a.ScheduledAt.Before(testNow) {
			t.Errorf("assignment scheduled in the past: %v", a.ScheduledAt)
		}
	}

	if campaignRepo.campaigns[1].Status != "active" {
		t.Errorf("expected campaign active, got %s", campaignRepo.campaigns[1].Status)
	}
	if len(cooldownRepo.upserted) != 5 {
		t.Errorf("expected 5 cooldowns, got %d", len(cooldownRepo.upserted))
	}
	for _, cd := range cooldownRepo.upserted {
		if cd.DurationHours < 12 || cd.DurationHours > 72 {
			t.Errorf("cooldown out of bounds: %v", cd.DurationHours)
		}
	}
	if len(participantRepo.touched) != 5 {
		t.Errorf("expected 5 participation touches, got %d", len(participantRepo.touched))
	}
	if len(notifier.sent) != 5 {
		t.Errorf("expected 5 notifications, got %d", len(notifier.sent))
	}
}

func TestBuildAssignmentsEmptyPoolSkips(t *testing.T) {
	pool := testPool(3)
	svc, campaignRepo, assignmentRepo, cooldownRepo, _, _ := newFixture(pool, pendingCampaign())
	active := map[int]time.Time{}
	for _, p := range pool {
		active[p.ID] = testNow.Add(time.Hour)
	}
	cooldownRepo.active = active

	result, err := svc.BuildAssignments(1)
	if err != nil {
		t.Fatalf("expected skip, got error: %v", err)
	}
	if result.Assigned != 0 {
		t.Fatalf("expected 0 assigned, got %d", result.Assigned)
	}
	if len(assignmentRepo.created) != 0 {
		t.Errorf("expected no assignments, got %d", len(assignmentRepo.created))
	}
	if campaignRepo.campaigns[1].Status != "pending" {
		t.Errorf("campaign should stay pending, got %s", campaignRepo.campaigns[1].Status)
	}
}

func TestBuildAssignmentsIdempotentOnRedelivery(t *testing.T) {
	c := pendingCampaign()
	c.Status = "active"
	svc, _, assignmentRepo, _, _, _ := newFixture(testPool(5), c)

	result, err := svc.BuildAssignments(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Assigned != 0 || len(assignmentRepo.created) != 0 {
		t.Errorf("redelivered job must be a no-op")
	}
}

func TestBuildAssignmentsRejectsInvalidNumbers(t *testing.T) {
	c := pendingCampaign()
	c.EstimatedParticipants = 0
	svc, _, _, _, _, _ := newFixture(testPool(5), c)

	_, err := svc.BuildAssignments(1)
	var invalid *appErrors.ErrInvalidCampaign
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidCampaign, got %v", err)
	}
}

func TestNotifyFailureDoesNotAbortBatch(t *testing.T) {
	svc, campaignRepo, assignmentRepo, _, _, notifier := newFixture(testPool(5), pendingCampaign())
	notifier.fail = true

	result, err := svc.BuildAssignments(1)
	if err != nil {
		t.Fatalf("notification failure must not fail the batch: %v", err)
	}
	if result.Assigned != 5 || len(assignmentRepo.created) != 5 {
		t.Errorf("expected full batch despite notify failures")
	}
	if campaignRepo.campaigns[1].Status != "active" {
		t.Errorf("expected campaign active, got %s", campaignRepo.campaigns[1].Status)
	}
}
