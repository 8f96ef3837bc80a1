package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

// GetByID implements employee.Repository.
func (r *EmployeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if emp, ok := r.employees[id]; ok {
		return emp, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// GetByMobileNumber implements employee.Repository.
func (r *EmployeeRepository) GetByMobileNumber(_ context.Context, mobileNumber string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.employees {
		if emp.MobileNumber == mobileNumber {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// Create implements employee.Repository.
func (r *EmployeeRepository) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, emp := range r.employees {
		if emp.MobileNumber == newEmployee.MobileNumber {
			return employee.Employee{}, employee.ErrMobileNumberExists
		}
	}

	now := time.Now().UTC()
	newEmployee.ID = uuid.NewString()
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// List implements employee.Repository.
func (r *EmployeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		result = append(result, emp)
	}
	return result, nil
}
