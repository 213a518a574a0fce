package service

import (
	"log"

	"github.com/hypetribe/engagement-backend/internal/model"
)

// AssignmentStore defines the methods the worker needs
type AssignmentStore interface {
	GetByID(id int) (*model.Assignment, error)
	UpdateStatus(id int, status string) error
}

// Worker marks assignments executed or failed as their scheduled posts go
// out through the injected send func.
type Worker struct {
	Assignments AssignmentStore
	JobChan     <-chan int
	SendFunc    func(a *model.Assignment) bool
}

// Constructor
func NewWorker(store AssignmentStore, jobChan <-chan int, sendFunc func(a *model.Assignment) bool) *Worker {
	return &Worker{
		Assignments: store,
		JobChan:     jobChan,
		SendFunc:    sendFunc,
	}
}

// Start begins processing jobs
func (w *Worker) Start() {
	for jobID := range w.JobChan {
		a, err := w.Assignments.GetByID(jobID)
		if err != nil {
			log.Println("Failed to get assignment:", err)
			continue
		}
		if a == nil {
			log.Println("Assignment not found:", jobID)
			continue
		}

		status := "failed"
		if w.SendFunc(a) {
			status = "executed"
		}

		if err := w.Assignments.UpdateStatus(a.ID, status); err != nil {
			log.Println("Failed to update assignment status:", err)
		}
	}
}
