package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/domain/leave"
)

type LeaveRepository struct {
	mu     sync.RWMutex
	leaves map[string]leave.Leave
}

func NewLeaveRepository() *LeaveRepository {
	return &LeaveRepository{leaves: make(map[string]leave.Leave)}
}

// Create implements leave.Repository.
func (r *LeaveRepository) Create(_ context.Context, l leave.Leave) (leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	r.leaves[l.ID] = l
	return l, nil
}

// GetByID implements leave.Repository.
func (r *LeaveRepository) GetByID(_ context.Context, id string) (leave.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.leaves[id]; ok {
		return l, nil
	}
	return leave.Leave{}, leave.ErrLeaveNotFound
}

// ListByStatus implements leave.Repository.
func (r *LeaveRepository) ListByStatus(_ context.Context, status leave.Status) ([]leave.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.Leave
	for _, l := range r.leaves {
		if l.Status == status {
			result = append(result, l)
		}
	}
	sortLeaves(result)
	return result, nil
}

// ListByEmployee implements leave.Repository.
func (r *LeaveRepository) ListByEmployee(_ context.Context, employeeID string) ([]leave.Leave, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.Leave
	for _, l := range r.leaves {
		if l.EmployeeID == employeeID {
			result = append(result, l)
		}
	}
	sortLeaves(result)
	return result, nil
}

// UpdateStatus implements leave.Repository.
func (r *LeaveRepository) UpdateStatus(_ context.Context, id string, status leave.Status) (leave.Leave, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	r.leaves[id] = l
	return l, nil
}

func sortLeaves(leaves []leave.Leave) {
	sort.Slice(leaves, func(i, j int) bool {
		return leaves[i].CreatedAt.After(leaves[j].CreatedAt)
	})
}
