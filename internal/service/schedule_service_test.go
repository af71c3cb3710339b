package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendamiento/internal/client"
	"agendamiento/internal/entities"
)

func newScheduleFixture(t *testing.T, handler http.HandlerFunc) (*ScheduleService, *int32) {
	t.Helper()
	var slotCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/horarios-disponibles") {
			atomic.AddInt32(&slotCalls, 1)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewScheduleService(client.NewWellnessClient(srv.URL, "", srv.Client())), &slotCalls
}

func TestResolveSlotsBlockedDateShortCircuits(t *testing.T) {
	svc, slotCalls := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fechas-no-disponibles") {
			w.Write([]byte(`{"fechas_no_disponibles": ["2026-09-10"]}`))
			return
		}
		w.Write([]byte(`{"success": true, "horarios": [{"id": 1, "display": "08:00 - 09:00"}]}`))
	})

	list := svc.ResolveSlots(context.Background(), "12", "2026-09-10")
	assert.True(t, list.Blocked)
	assert.Empty(t, list.Slots)
	assert.Empty(t, list.Warning)
	assert.Equal(t, int32(0), atomic.LoadInt32(slotCalls))
}

func TestResolveSlotsDegradesToWarningOnFailure(t *testing.T) {
	svc, _ := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fechas-no-disponibles") {
			w.Write([]byte(`{"fechas_no_disponibles": []}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	list := svc.ResolveSlots(context.Background(), "12", "2026-09-15")
	assert.False(t, list.Blocked)
	assert.Empty(t, list.Slots)
	assert.Equal(t, slotsWarning, list.Warning)
}

func TestResolveSlotsReturnsSlots(t *testing.T) {
	svc, _ := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fechas-no-disponibles") {
			w.Write([]byte(`{"fechas_no_disponibles": []}`))
			return
		}
		w.Write([]byte(`{"success": true, "horarios": [
			{"id": 1, "display": "08:00 - 09:00", "hora_inicio": "08:00", "hora_fin": "09:00"},
			{"id": 2, "display": "09:00 - 10:00", "hora_inicio": "09:00", "hora_fin": "10:00"}
		]}`))
	})

	list := svc.ResolveSlots(context.Background(), "12", "2026-09-15")
	require.Len(t, list.Slots, 2)
	assert.Equal(t, "1", list.Slots[0].ID)
}

func TestSlotPickerSetDateClearsSelectionSynchronously(t *testing.T) {
	svc, _ := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fechas-no-disponibles") {
			w.Write([]byte(`{"fechas_no_disponibles": []}`))
			return
		}
		w.Write([]byte(`{"success": true, "horarios": [{"id": 1, "display": "08:00 - 09:00"}]}`))
	})

	picker := NewSlotPicker(svc, "12")
	picker.SetDate("2026-09-15")
	picker.Load(context.Background())
	require.NoError(t, picker.Select("1"))
	require.Equal(t, "1", picker.Selected())

	// The clear happens before any fetch for the new date resolves.
	picker.SetDate("2026-09-16")
	assert.Empty(t, picker.Selected())
	assert.Empty(t, picker.Slots())
}

func TestSlotPickerStaleFetchLosesToNewerDate(t *testing.T) {
	svc, _ := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "fechas-no-disponibles") {
			w.Write([]byte(`{"fechas_no_disponibles": []}`))
			return
		}
		w.Write([]byte(`{"success": true, "horarios": [{"id": 9, "display": "18:00 - 19:00"}]}`))
	})

	picker := NewSlotPicker(svc, "12")
	staleGen := picker.SetDate("2026-09-15")
	picker.SetDate("2026-09-16")

	staleList := entities.SlotList{
		Date:  "2026-09-15",
		Slots: []entities.ScheduleSlot{{ID: "1", Display: "08:00 - 09:00"}},
	}
	assert.False(t, picker.install(staleGen, staleList))
	assert.Empty(t, picker.Slots())

	// The current generation still installs normally.
	picker.Load(context.Background())
	require.Len(t, picker.Slots(), 1)
	assert.Equal(t, "9", picker.Slots()[0].ID)
}

func TestSlotPickerSelectRequiresInstalledSlot(t *testing.T) {
	svc, _ := newScheduleFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fechas_no_disponibles": []}`))
	})

	picker := NewSlotPicker(svc, "12")
	picker.SetDate("2026-09-15")
	assert.Error(t, picker.Select("1"))
}
