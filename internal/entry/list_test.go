package entry

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ziming-L/wwu-course-navigator/internal/dialog"
	"github.com/Ziming-L/wwu-course-navigator/internal/dto"
	"github.com/Ziming-L/wwu-course-navigator/internal/models"
	"github.com/Ziming-L/wwu-course-navigator/internal/schedule"
	appErrors "github.com/Ziming-L/wwu-course-navigator/pkg/errors"
)

type submitterStub struct {
	resp    models.Schedule
	err     error
	lastReq dto.SubmitEntriesRequest
	called  bool
}

func (s *submitterStub) SubmitEntries(_ context.Context, req dto.SubmitEntriesRequest) (models.Schedule, error) {
	s.called = true
	s.lastReq = req
	return s.resp, s.err
}

func newTestController(backend *submitterStub, d *dialog.Scripted) (*Controller, *schedule.Store) {
	store := schedule.NewStore()
	return NewController(NewPipeline(d), d, backend, store, nil), store
}

func TestControllerSubmitEmptyList(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{}
	controller, _ := newTestController(backend, d)

	err := controller.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
	assert.False(t, backend.called)
	require.Len(t, d.Alerts, 1)
	assert.Contains(t, d.Alerts[0], "at least one course entry")
}

func TestControllerSubmitSuccess(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{resp: models.Schedule{
		"Monday": {{Time: "10:00 AM - 10:50 AM", Course: "CSCI 447 - Operating Systems"}},
	}}
	controller, store := newTestController(backend, d)

	ed := validEditor(t)
	controller.Add(ed)

	err := controller.Submit(context.Background())
	require.NoError(t, err)

	assert.True(t, backend.called)
	assert.Equal(t, 0, controller.Len())
	assert.True(t, ed.Detached())
	assert.True(t, store.NavEnabled())
	assert.Equal(t, "Monday", store.Selected())
}

func TestControllerSubmitWireShape(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{resp: models.Schedule{}}
	controller, _ := newTestController(backend, d)
	controller.Add(validEditor(t))

	require.NoError(t, controller.Submit(context.Background()))
	require.Len(t, backend.lastReq.Entries, 1)

	wire := backend.lastReq.Entries[0]
	assert.Equal(t, "01/07/2025", wire.StartDate)
	assert.Equal(t, "03/21/2025", wire.EndDate)
	assert.Equal(t, "10:00 AM", wire.StartTime)
	assert.Equal(t, "10:50 AM", wire.EndTime)
	assert.Equal(t, "Main Campus, Communications Facility, 105", wire.Location)
	assert.Equal(t, []string{"Monday"}, wire.Days)
}

func TestControllerSubmitOnlineLocation(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{resp: models.Schedule{}}
	controller, _ := newTestController(backend, d)

	ed := validEditor(t)
	ed.SetCampus(models.CampusOnline)
	controller.Add(ed)

	require.NoError(t, controller.Submit(context.Background()))
	require.Len(t, backend.lastReq.Entries, 1)
	assert.Equal(t, "Online, Online, N/A", backend.lastReq.Entries[0].Location)
}

func TestControllerSubmitStopsAtFirstInvalidEntry(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{}
	controller, _ := newTestController(backend, d)

	bad := validEditor(t)
	bad.SetField(FieldRoom, "")
	later := validEditor(t)
	later.SetField(FieldCourseCode, "nope")

	controller.Add(bad)
	controller.Add(later)

	err := controller.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, backend.called)
	assert.Equal(t, 2, controller.Len())

	// validation never reached the second entry
	assert.False(t, later.Flagged(FieldCourseCode))
	require.Len(t, d.Alerts, 1)
	assert.Contains(t, d.Alerts[0], "Entry 1")
}

func TestControllerSubmitBackendRejection(t *testing.T) {
	d := &dialog.Scripted{}
	backend := &submitterStub{
		err: appErrors.New(appErrors.ErrServerRejection.Code, http.StatusBadRequest, "No valid schedule data found"),
	}
	controller, store := newTestController(backend, d)
	controller.Add(validEditor(t))

	err := controller.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrServerRejection))

	// the list survives the failure for correction and the store is untouched
	assert.Equal(t, 1, controller.Len())
	assert.False(t, store.NavEnabled())
	require.Len(t, d.Alerts, 1)
	assert.Equal(t, "No valid schedule data found", d.Alerts[0])
}

func TestControllerRemoveDetachesOnlyTarget(t *testing.T) {
	d := &dialog.Scripted{}
	controller, _ := newTestController(&submitterStub{}, d)

	first := validEditor(t)
	second := validEditor(t)
	second.SetField(FieldCourseName, "Compilers")
	controller.Add(first)
	controller.Add(second)

	controller.Remove(0)
	assert.True(t, first.Detached())
	assert.False(t, second.Detached())
	require.Equal(t, 1, controller.Len())
	assert.Equal(t, "Compilers", controller.Editors()[0].Value(FieldCourseName))

	// out-of-range removals are ignored
	controller.Remove(5)
	assert.Equal(t, 1, controller.Len())
}
