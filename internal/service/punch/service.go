package punch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/clock"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/keymutex"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/metrics"
	"github.com/rajasreeit/crm-backend-go/internal/service/file"
)

type EngineImpl struct {
	punchRepo   punch.Repository
	employees   employee.Repository
	fileService file.Service
	clock       clock.Clock
	locks       *keymutex.KeyMutex
	metrics     *metrics.Metrics
}

func NewEngine(
	punchRepo punch.Repository,
	employeeRepo employee.Repository,
	fileService file.Service,
	clk clock.Clock,
	m *metrics.Metrics,
) punch.Engine {
	return &EngineImpl{
		punchRepo:   punchRepo,
		employees:   employeeRepo,
		fileService: fileService,
		clock:       clk,
		locks:       keymutex.New(),
		metrics:     m,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// formatWorkedMinutes renders a worked duration as "8h30m".
func formatWorkedMinutes(mins int) string {
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

// RecordPunch implements punch.Engine.
//
// Intent is implicit: no open cycle means punch-in, an open cycle means
// punch-out. The employee's lock covers the whole find-open / validate / save
// window, so of two concurrent punch-ins the second observes the cycle the
// first opened and closes it.
func (e *EngineImpl) RecordPunch(ctx context.Context, subject string, req punch.PunchRequest) (punch.PunchActivityResponse, error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveRecordPunch(time.Since(started))
	}()

	if err := req.Validate(); err != nil {
		return punch.PunchActivityResponse{}, err
	}

	emp, err := e.employees.GetByMobileNumber(ctx, subject)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			e.metrics.IncrementAuthFailure()
			return punch.PunchActivityResponse{}, employee.ErrEmployeeNotFound
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	e.locks.Lock(emp.ID)
	defer e.locks.Unlock(emp.ID)

	open, err := e.punchRepo.FindOpen(ctx, emp.ID)
	if err != nil {
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to find open punch cycle: %w", err)
	}

	if open == nil {
		if req.WantsPunchOut() {
			e.metrics.IncrementPunch("out", "rejected")
			return punch.PunchActivityResponse{}, punch.ErrNoActivePunchIn
		}
		resp, err := e.beginCycle(ctx, emp, req)
		e.metrics.IncrementPunch("in", resultLabel(err))
		return resp, err
	}

	resp, err := e.endCycle(ctx, emp, *open, req)
	e.metrics.IncrementPunch("out", resultLabel(err))
	return resp, err
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, punch.ErrInvalidPunchSequence), errors.Is(err, punch.ErrNoActivePunchIn):
		return "rejected"
	default:
		return "error"
	}
}

// beginCycle opens a new punch activity. Work report and reminder date are
// stored provisionally when supplied here; punch-out overwrites them if
// resupplied.
func (e *EngineImpl) beginCycle(ctx context.Context, emp employee.Employee, req punch.PunchRequest) (punch.PunchActivityResponse, error) {
	now := e.clock.Now()
	date := now.Format("2006-01-02")

	activity := punch.PunchActivity{
		EmployeeID:    emp.ID,
		Date:          date,
		TimeOfPunchIn: &now,
		WorkReport:    req.WorkReport,
		ReminderDate:  req.ReminderDate,
	}

	var uploadedPath string
	if req.PunchInImageHeader != nil {
		url, path, err := e.fileService.UploadPunchProof(ctx, emp.ID, date, req.PunchInImage, req.PunchInImageHeader.Filename, "PUNCH_IN")
		if err != nil {
			return punch.PunchActivityResponse{}, fmt.Errorf("failed to upload punch-in image: %w", err)
		}
		activity.PunchInImageURL = &url
		uploadedPath = path
	}

	created, err := e.punchRepo.Create(ctx, activity)
	if err != nil {
		if uploadedPath != "" {
			// The record never persisted; don't leave its proof image behind.
			_ = e.fileService.DeleteFile(ctx, uploadedPath)
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to create punch activity: %w", err)
	}

	created.EmployeeName = &emp.FullName
	return mapActivityToResponse(created), nil
}

// endCycle closes the open punch activity, recomputing worked duration from
// the two stamps. The stored record's date is never touched here.
func (e *EngineImpl) endCycle(ctx context.Context, emp employee.Employee, activity punch.PunchActivity, req punch.PunchRequest) (punch.PunchActivityResponse, error) {
	now := e.clock.Now()

	if activity.TimeOfPunchIn == nil {
		return punch.PunchActivityResponse{}, fmt.Errorf("open punch activity %s has no punch-in time", activity.ID)
	}
	if now.Before(*activity.TimeOfPunchIn) {
		return punch.PunchActivityResponse{}, punch.ErrInvalidPunchSequence
	}

	var uploadedPath string
	if req.PunchOutImageHeader != nil {
		url, path, err := e.fileService.UploadPunchProof(ctx, emp.ID, activity.Date, req.PunchOutImage, req.PunchOutImageHeader.Filename, "PUNCH_OUT")
		if err != nil {
			return punch.PunchActivityResponse{}, fmt.Errorf("failed to upload punch-out image: %w", err)
		}
		activity.PunchOutImageURL = &url
		uploadedPath = path
	}

	workedMins := int(now.Sub(*activity.TimeOfPunchIn).Minutes())

	activity.TimeOfPunchOut = &now
	activity.WorkedMinutes = &workedMins
	if req.WorkReport != nil {
		activity.WorkReport = req.WorkReport
	}
	if req.ReminderDate != nil {
		activity.ReminderDate = req.ReminderDate
	}

	if err := e.punchRepo.Close(ctx, activity); err != nil {
		if uploadedPath != "" {
			_ = e.fileService.DeleteFile(ctx, uploadedPath)
		}
		if errors.Is(err, punch.ErrPunchActivityNotFound) {
			// The row was closed underneath us; with the per-employee lock this
			// only happens if an out-of-band write closed the cycle.
			return punch.PunchActivityResponse{}, punch.ErrNoActivePunchIn
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to close punch activity: %w", err)
	}

	activity.EmployeeName = &emp.FullName
	return mapActivityToResponse(activity), nil
}

// UpdateActivity implements punch.Engine. Admin correction of a stored record:
// stamps and images may be replaced, and worked minutes are recomputed when
// both stamps are present afterwards.
func (e *EngineImpl) UpdateActivity(ctx context.Context, req punch.UpdatePunchActivityRequest) (punch.PunchActivityResponse, error) {
	if err := req.Validate(); err != nil {
		return punch.PunchActivityResponse{}, err
	}

	activity, err := e.punchRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchActivityNotFound) {
			return punch.PunchActivityResponse{}, punch.ErrPunchActivityNotFound
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to get punch activity: %w", err)
	}

	e.locks.Lock(activity.EmployeeID)
	defer e.locks.Unlock(activity.EmployeeID)

	// Re-read under the lock; a punch-out may have committed between the first
	// read and acquiring the employee's lock.
	activity, err = e.punchRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchActivityNotFound) {
			return punch.PunchActivityResponse{}, punch.ErrPunchActivityNotFound
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to get punch activity: %w", err)
	}

	if req.Date != nil && *req.Date != "" {
		activity.Date = *req.Date
	}

	if req.TimeOfPunchIn != nil && *req.TimeOfPunchIn != "" {
		t, err := parseStamp(activity.Date, *req.TimeOfPunchIn)
		if err != nil {
			return punch.PunchActivityResponse{}, err
		}
		activity.TimeOfPunchIn = &t
	}

	if req.TimeOfPunchOut != nil && *req.TimeOfPunchOut != "" {
		t, err := parseStamp(activity.Date, *req.TimeOfPunchOut)
		if err != nil {
			return punch.PunchActivityResponse{}, err
		}
		activity.TimeOfPunchOut = &t
	}

	var uploadedPaths []string
	if req.PunchInImageHeader != nil {
		url, path, err := e.fileService.UploadPunchProof(ctx, activity.EmployeeID, activity.Date, req.PunchInImage, req.PunchInImageHeader.Filename, "PUNCH_IN")
		if err != nil {
			return punch.PunchActivityResponse{}, fmt.Errorf("failed to upload punch-in image: %w", err)
		}
		activity.PunchInImageURL = &url
		uploadedPaths = append(uploadedPaths, path)
	}

	if req.PunchOutImageHeader != nil {
		url, path, err := e.fileService.UploadPunchProof(ctx, activity.EmployeeID, activity.Date, req.PunchOutImage, req.PunchOutImageHeader.Filename, "PUNCH_OUT")
		if err != nil {
			return punch.PunchActivityResponse{}, fmt.Errorf("failed to upload punch-out image: %w", err)
		}
		activity.PunchOutImageURL = &url
		uploadedPaths = append(uploadedPaths, path)
	}

	// Worked duration is always derived from its inputs
	if activity.TimeOfPunchIn != nil && activity.TimeOfPunchOut != nil {
		if activity.TimeOfPunchOut.Before(*activity.TimeOfPunchIn) {
			return punch.PunchActivityResponse{}, punch.ErrInvalidPunchSequence
		}
		workedMins := int(activity.TimeOfPunchOut.Sub(*activity.TimeOfPunchIn).Minutes())
		activity.WorkedMinutes = &workedMins
	}

	if err := e.punchRepo.Update(ctx, activity); err != nil {
		for _, path := range uploadedPaths {
			_ = e.fileService.DeleteFile(ctx, path)
		}
		return punch.PunchActivityResponse{}, fmt.Errorf("failed to update punch activity: %w", err)
	}

	return mapActivityToResponse(activity), nil
}

// parseStamp accepts either a full "2006-01-02 15:04:05" timestamp or a bare
// "15:04:05" combined with the record's date.
func parseStamp(date string, value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05", value); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

// mapActivityToResponse converts a PunchActivity entity to its response form.
func mapActivityToResponse(activity punch.PunchActivity) punch.PunchActivityResponse {
	var workedHours *string
	if activity.WorkedMinutes != nil {
		formatted := formatWorkedMinutes(*activity.WorkedMinutes)
		workedHours = &formatted
	}

	return punch.PunchActivityResponse{
		ID:               activity.ID,
		EmployeeID:       activity.EmployeeID,
		EmployeeName:     activity.EmployeeName,
		Date:             activity.Date,
		TimeOfPunchIn:    timePtrToString(activity.TimeOfPunchIn),
		TimeOfPunchOut:   timePtrToString(activity.TimeOfPunchOut),
		PunchInImageURL:  activity.PunchInImageURL,
		PunchOutImageURL: activity.PunchOutImageURL,
		WorkReport:       activity.WorkReport,
		ReminderDate:     activity.ReminderDate,
		WorkedHours:      workedHours,
		WorkedMinutes:    activity.WorkedMinutes,
	}
}
