package punch

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	"github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/repository/memory"
)

// fakeClock lets tests position the engine's notion of now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (punch.Engine, *memory.PunchRepository, *fakeClock, employee.Employee) {
	t.Helper()

	punchRepo := memory.NewPunchRepository()
	employeeRepo := memory.NewEmployeeRepository()

	emp, err := employeeRepo.Create(context.Background(), employee.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)

	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	engine := NewEngine(punchRepo, employeeRepo, nil, clk, nil)
	return engine, punchRepo, clk, emp
}

func TestRecordPunchOpensCycle(t *testing.T) {
	ctx := context.Background()
	engine, punchRepo, _, emp := newTestEngine(t)

	report := "Started on the billing migration"
	resp, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{WorkReport: &report})
	require.NoError(t, err)

	assert.Equal(t, emp.ID, resp.EmployeeID)
	assert.Equal(t, "2025-03-10", resp.Date)
	require.NotNil(t, resp.TimeOfPunchIn)
	assert.Equal(t, "2025-03-10 09:00:00", *resp.TimeOfPunchIn)
	assert.Nil(t, resp.TimeOfPunchOut)
	assert.Nil(t, resp.WorkedMinutes)
	require.NotNil(t, resp.WorkReport)
	assert.Equal(t, report, *resp.WorkReport)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Asha Rao", *resp.EmployeeName)

	open, err := punchRepo.FindOpen(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, resp.ID, open.ID)
}

func TestRecordPunchClosesOpenCycle(t *testing.T) {
	ctx := context.Background()
	engine, punchRepo, clk, emp := newTestEngine(t)

	_, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)

	clk.Advance(8*time.Hour + 30*time.Minute)

	report := "Closed ticket #42"
	resp, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{WorkReport: &report})
	require.NoError(t, err)

	require.NotNil(t, resp.TimeOfPunchOut)
	assert.Equal(t, "2025-03-10 17:30:00", *resp.TimeOfPunchOut)
	require.NotNil(t, resp.WorkedMinutes)
	assert.Equal(t, 510, *resp.WorkedMinutes)
	require.NotNil(t, resp.WorkedHours)
	assert.Equal(t, "8h30m", *resp.WorkedHours)
	require.NotNil(t, resp.WorkReport)
	assert.Equal(t, report, *resp.WorkReport)

	open, err := punchRepo.FindOpen(ctx, emp.ID)
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestRecordPunchExplicitPunchOutWithoutOpenCycle(t *testing.T) {
	ctx := context.Background()
	engine, _, _, emp := newTestEngine(t)

	req := punch.PunchRequest{
		PunchOutImageHeader: &multipart.FileHeader{Filename: "proof.jpg", Size: 1024},
	}
	_, err := engine.RecordPunch(ctx, emp.MobileNumber, req)
	assert.ErrorIs(t, err, punch.ErrNoActivePunchIn)
}

func TestRecordPunchUnknownSubject(t *testing.T) {
	ctx := context.Background()
	engine, _, _, _ := newTestEngine(t)

	_, err := engine.RecordPunch(ctx, "0000000000", punch.PunchRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordPunchRejectsBackwardsClock(t *testing.T) {
	ctx := context.Background()
	engine, punchRepo, clk, emp := newTestEngine(t)

	_, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)

	clk.Set(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))

	_, err = engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	assert.ErrorIs(t, err, punch.ErrInvalidPunchSequence)

	// The open record is left untouched by the rejected punch-out.
	open, findErr := punchRepo.FindOpen(ctx, emp.ID)
	require.NoError(t, findErr)
	require.NotNil(t, open)
	assert.Nil(t, open.TimeOfPunchOut)
	assert.Nil(t, open.WorkedMinutes)
}

func TestRecordPunchIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	engine, _, clk, emp := newTestEngine(t)

	first, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)
	assert.Nil(t, first.TimeOfPunchOut)

	clk.Advance(time.Minute)

	second, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NotNil(t, second.TimeOfPunchOut)
}

func TestRecordPunchConcurrentCallsSerialize(t *testing.T) {
	ctx := context.Background()
	engine, punchRepo, _, emp := newTestEngine(t)

	const calls = 4
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			_, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := punchRepo.ListByEmployee(ctx, emp.ID)
	require.NoError(t, err)

	openCount := 0
	for _, record := range records {
		if record.IsOpen() {
			openCount++
		}
	}
	assert.LessOrEqual(t, openCount, 1)
	// An even number of calls pairs up into fully closed cycles.
	assert.Equal(t, 0, openCount)
	assert.Len(t, records, calls/2)
}

func TestUpdateActivityRecomputesWorkedMinutes(t *testing.T) {
	ctx := context.Background()
	engine, _, clk, emp := newTestEngine(t)

	created, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)

	in := "09:00:00"
	out := "18:30:00"
	resp, err := engine.UpdateActivity(ctx, punch.UpdatePunchActivityRequest{
		ID:             created.ID,
		TimeOfPunchIn:  &in,
		TimeOfPunchOut: &out,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WorkedMinutes)
	assert.Equal(t, 570, *resp.WorkedMinutes)
	require.NotNil(t, resp.WorkedHours)
	assert.Equal(t, "9h30m", *resp.WorkedHours)
}

func TestUpdateActivityRejectsInvertedStamps(t *testing.T) {
	ctx := context.Background()
	engine, _, clk, emp := newTestEngine(t)

	created, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)

	in := "18:00:00"
	out := "09:00:00"
	_, err = engine.UpdateActivity(ctx, punch.UpdatePunchActivityRequest{
		ID:             created.ID,
		TimeOfPunchIn:  &in,
		TimeOfPunchOut: &out,
	})
	assert.ErrorIs(t, err, punch.ErrInvalidPunchSequence)
}

func TestUpdateActivityNotFound(t *testing.T) {
	ctx := context.Background()
	engine, _, _, _ := newTestEngine(t)

	_, err := engine.UpdateActivity(ctx, punch.UpdatePunchActivityRequest{ID: "missing"})
	assert.ErrorIs(t, err, punch.ErrPunchActivityNotFound)
}

// interceptPunchRepo runs a hook before delegating GetByID, letting tests
// slip a write in between the engine's reads.
type interceptPunchRepo struct {
	punch.Repository
	onGetByID func()
}

func (r *interceptPunchRepo) GetByID(ctx context.Context, id string) (punch.PunchActivity, error) {
	if r.onGetByID != nil {
		r.onGetByID()
	}
	return r.Repository.GetByID(ctx, id)
}

func TestUpdateActivityKeepsConcurrentPunchOut(t *testing.T) {
	ctx := context.Background()

	mem := memory.NewPunchRepository()
	repo := &interceptPunchRepo{Repository: mem}
	employeeRepo := memory.NewEmployeeRepository()

	emp, err := employeeRepo.Create(ctx, employee.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)

	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	engine := NewEngine(repo, employeeRepo, nil, clk, nil)

	created, err := engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{})
	require.NoError(t, err)

	// Punch out lands after the admin's first read but before the lock is
	// taken; the correction must not erase it.
	outTime := time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	var once sync.Once
	repo.onGetByID = func() {
		once.Do(func() {
			stored, err := mem.GetByID(ctx, created.ID)
			require.NoError(t, err)
			stored.TimeOfPunchOut = &outTime
			mins := 510
			stored.WorkedMinutes = &mins
			require.NoError(t, mem.Close(ctx, stored))
		})
	}

	newDate := "2025-03-11"
	resp, err := engine.UpdateActivity(ctx, punch.UpdatePunchActivityRequest{
		ID:   created.ID,
		Date: &newDate,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TimeOfPunchOut)

	stored, err := mem.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", stored.Date)
	require.NotNil(t, stored.TimeOfPunchOut)
	assert.True(t, stored.TimeOfPunchOut.Equal(outTime))
	require.NotNil(t, stored.WorkedMinutes)
	assert.Equal(t, 510, *stored.WorkedMinutes)
}

// fakeFileService records uploads and deletions without touching storage.
type fakeFileService struct {
	mu      sync.Mutex
	uploads []string
	deletes []string
}

func (f *fakeFileService) UploadPunchProof(_ context.Context, employeeID string, date string, _ io.Reader, filename string, direction string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := filepath.Join("punch", employeeID, date, strings.ToLower(direction)+"_"+filename)
	f.uploads = append(f.uploads, path)
	return "http://localhost:8080/uploads/" + path, path, nil
}

func (f *fakeFileService) DeleteFile(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, path)
	return nil
}

func (f *fakeFileService) GetFileURL(_ context.Context, path string) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

type failingCreateRepo struct {
	punch.Repository
}

func (r *failingCreateRepo) Create(context.Context, punch.PunchActivity) (punch.PunchActivity, error) {
	return punch.PunchActivity{}, errors.New("connection reset")
}

func TestRecordPunchDeletesImageWhenCreateFails(t *testing.T) {
	ctx := context.Background()

	repo := &failingCreateRepo{Repository: memory.NewPunchRepository()}
	employeeRepo := memory.NewEmployeeRepository()

	emp, err := employeeRepo.Create(ctx, employee.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)

	files := &fakeFileService{}
	clk := newFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	engine := NewEngine(repo, employeeRepo, files, clk, nil)

	_, err = engine.RecordPunch(ctx, emp.MobileNumber, punch.PunchRequest{
		PunchInImageHeader: &multipart.FileHeader{Filename: "in.jpg", Size: 1024},
	})
	require.Error(t, err)

	require.Len(t, files.uploads, 1)
	require.Len(t, files.deletes, 1)
	assert.Equal(t, files.uploads[0], files.deletes[0])
}

func TestFormatWorkedMinutes(t *testing.T) {
	assert.Equal(t, "8h30m", formatWorkedMinutes(510))
	assert.Equal(t, "0h00m", formatWorkedMinutes(0))
	assert.Equal(t, "1h05m", formatWorkedMinutes(65))
	assert.Equal(t, "24h00m", formatWorkedMinutes(1440))
}
