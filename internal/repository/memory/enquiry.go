package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/domain/enquiry"
)

type EnquiryRepository struct {
	mu        sync.RWMutex
	enquiries map[string]enquiry.Enquiry
}

func NewEnquiryRepository() *EnquiryRepository {
	return &EnquiryRepository{enquiries: make(map[string]enquiry.Enquiry)}
}

// Create implements enquiry.Repository.
func (r *EnquiryRepository) Create(_ context.Context, e enquiry.Enquiry) (enquiry.Enquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.enquiries[e.ID] = e
	return e, nil
}

// List implements enquiry.Repository.
func (r *EnquiryRepository) List(_ context.Context) ([]enquiry.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]enquiry.Enquiry, 0, len(r.enquiries))
	for _, e := range r.enquiries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListByEmployee implements enquiry.Repository.
func (r *EnquiryRepository) ListByEmployee(_ context.Context, employeeID string) ([]enquiry.Enquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []enquiry.Enquiry
	for _, e := range r.enquiries {
		if e.EmployeeID == employeeID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Delete implements enquiry.Repository.
func (r *EnquiryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enquiries[id]; !ok {
		return enquiry.ErrEnquiryNotFound
	}
	delete(r.enquiries, id)
	return nil
}
