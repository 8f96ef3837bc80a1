package enquiry

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/enquiry"
)

type EnquiryServiceImpl struct {
	enquiries enquiry.Repository
	employees employee.Repository
}

func NewEnquiryService(enquiryRepo enquiry.Repository, employeeRepo employee.Repository) enquiry.Service {
	return &EnquiryServiceImpl{
		enquiries: enquiryRepo,
		employees: employeeRepo,
	}
}

// Create implements enquiry.Service.
func (s *EnquiryServiceImpl) Create(ctx context.Context, subject string, req enquiry.CreateEnquiryRequest) (enquiry.EnquiryResponse, error) {
	if err := req.Validate(); err != nil {
		return enquiry.EnquiryResponse{}, err
	}

	emp, err := s.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return enquiry.EnquiryResponse{}, employee.ErrEmployeeNotFound
		}
		return enquiry.EnquiryResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	created, err := s.enquiries.Create(ctx, enquiry.Enquiry{
		EmployeeID: emp.ID,
		Title:      req.Title,
		Message:    req.Message,
	})
	if err != nil {
		return enquiry.EnquiryResponse{}, fmt.Errorf("failed to create enquiry: %w", err)
	}

	created.EmployeeName = &emp.FullName
	return mapEnquiryToResponse(created), nil
}

// ListForSubject implements enquiry.Service.
func (s *EnquiryServiceImpl) ListForSubject(ctx context.Context, subject string) ([]enquiry.EnquiryResponse, error) {
	emp, err := s.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to resolve employee: %w", err)
	}

	records, err := s.enquiries.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}

	responses := make([]enquiry.EnquiryResponse, 0, len(records))
	for _, record := range records {
		record.EmployeeName = &emp.FullName
		responses = append(responses, mapEnquiryToResponse(record))
	}
	return responses, nil
}

// ListAll implements enquiry.Service.
func (s *EnquiryServiceImpl) ListAll(ctx context.Context) ([]enquiry.EnquiryResponse, error) {
	records, err := s.enquiries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}

	responses := make([]enquiry.EnquiryResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, mapEnquiryToResponse(record))
	}
	return responses, nil
}

// Delete implements enquiry.Service.
func (s *EnquiryServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.enquiries.Delete(ctx, id); err != nil {
		if errors.Is(err, enquiry.ErrEnquiryNotFound) {
			return enquiry.ErrEnquiryNotFound
		}
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}
	return nil
}

func mapEnquiryToResponse(record enquiry.Enquiry) enquiry.EnquiryResponse {
	return enquiry.EnquiryResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		Title:        record.Title,
		Message:      record.Message,
	}
}
