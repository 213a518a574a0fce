package main

import (
	"sync"
	"testing"
	"time"

	"github.com/hypetribe/engagement-backend/internal/model"
	"github.com/hypetribe/engagement-backend/internal/service"
)

// MockAssignmentStore keeps assignments in memory
type MockAssignmentStore struct {
	assignments map[int]*model.Assignment
	mu          sync.Mutex
}

func (m *MockAssignmentStore) GetByID(id int) (*model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assignments[id], nil
}

func (m *MockAssignmentStore) UpdateStatus(id int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assignments[id]; ok {
		a.Status = status
	}
	return nil
}

func TestWorkerMarksExecuted(t *testing.T) {
	store := &MockAssignmentStore{
		assignments: map[int]*model.Assignment{
			1: {ID: 1, Status: "pending", CampaignID: 1, ParticipantID: 1, Role: model.RoleInitiator, ScheduledAt: time.Now()},
		},
	}

	jobChan := make(chan int, 1)
	jobChan <- 1

	var wg sync.WaitGroup
	wg.Add(1)

	worker := service.NewWorker(store, jobChan, func(a *model.Assignment) bool {
		wg.Done()
		return true
	})

	go worker.Start()
	wg.Wait()
	close(jobChan)

	// give the worker a beat to persist the status
	time.Sleep(10 * time.Millisecond)

	a, _ := store.GetByID(1)
	if a.Status != "executed" {
		t.Errorf("expected executed, got %s", a.Status)
	}
}

func TestWorkerMarksFailed(t *testing.T) {
	store := &MockAssignmentStore{
		assignments: map[int]*model.Assignment{
			2: {ID: 2, Status: "pending", CampaignID: 1, ParticipantID: 2, Role: model.RoleReplier},
		},
	}

	jobChan := make(chan int, 1)
	jobChan <- 2

	var wg sync.WaitGroup
	wg.Add(1)

	worker := service.NewWorker(store, jobChan, func(a *model.Assignment) bool {
		wg.Done()
		return false
	})

	go worker.Start()
	wg.Wait()
	close(jobChan)

	time.Sleep(10 * time.Millisecond)

	a, _ := store.GetByID(2)
	if a.Status != "failed" {
		t.Errorf("expected failed, got %s", a.Status)
	}
}
