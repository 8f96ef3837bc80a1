// Package memory holds mutex-guarded in-memory repositories. They favor
// clarity over performance and back the service tests and local bootstrapping.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
)

type PunchRepository struct {
	mu         sync.RWMutex
	activities map[string]punch.PunchActivity
}

func NewPunchRepository() *PunchRepository {
	return &PunchRepository{activities: make(map[string]punch.PunchActivity)}
}

// Create implements punch.Repository.
func (r *PunchRepository) Create(_ context.Context, activity punch.PunchActivity) (punch.PunchActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	activity.ID = uuid.NewString()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	r.activities[activity.ID] = activity
	return activity, nil
}

// FindOpen implements punch.Repository.
func (r *PunchRepository) FindOpen(_ context.Context, employeeID string) (*punch.PunchActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, activity := range r.activities {
		if activity.EmployeeID == employeeID && activity.IsOpen() {
			found := activity
			return &found, nil
		}
	}
	return nil, nil
}

// Close implements punch.Repository. The write succeeds only while the stored
// row is still open, mirroring the conditional UPDATE of the PostgreSQL
// implementation.
func (r *PunchRepository) Close(_ context.Context, activity punch.PunchActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.activities[activity.ID]
	if !ok {
		return punch.ErrPunchActivityNotFound
	}
	if stored.TimeOfPunchOut != nil {
		return punch.ErrPunchActivityNotFound
	}

	stored.TimeOfPunchOut = activity.TimeOfPunchOut
	stored.PunchOutImageURL = activity.PunchOutImageURL
	stored.WorkReport = activity.WorkReport
	stored.ReminderDate = activity.ReminderDate
	stored.WorkedMinutes = activity.WorkedMinutes
	stored.UpdatedAt = time.Now().UTC()
	r.activities[activity.ID] = stored
	return nil
}

// Update implements punch.Repository. Administrative correction; no open-cycle
// condition applies.
func (r *PunchRepository) Update(_ context.Context, activity punch.PunchActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.activities[activity.ID]
	if !ok {
		return punch.ErrPunchActivityNotFound
	}

	activity.CreatedAt = stored.CreatedAt
	activity.UpdatedAt = time.Now().UTC()
	r.activities[activity.ID] = activity
	return nil
}

// GetByID implements punch.Repository.
func (r *PunchRepository) GetByID(_ context.Context, id string) (punch.PunchActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if activity, ok := r.activities[id]; ok {
		return activity, nil
	}
	return punch.PunchActivity{}, punch.ErrPunchActivityNotFound
}

// List implements punch.Repository.
func (r *PunchRepository) List(_ context.Context) ([]punch.PunchActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]punch.PunchActivity, 0, len(r.activities))
	for _, activity := range r.activities {
		result = append(result, activity)
	}
	sortNewestFirst(result)
	return result, nil
}

// ListByEmployee implements punch.Repository.
func (r *PunchRepository) ListByEmployee(_ context.Context, employeeID string) ([]punch.PunchActivity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []punch.PunchActivity
	for _, activity := range r.activities {
		if activity.EmployeeID == employeeID {
			result = append(result, activity)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(activities []punch.PunchActivity) {
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
}
