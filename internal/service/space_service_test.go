package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotsavers/internal/db"
	"spotsavers/internal/entities"
	apperrors "spotsavers/internal/errors"
	"spotsavers/internal/repository"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestSpaceService(spaces *stubSpaceStore) *SpaceService {
	svc := NewSpaceService(spaces, newStubDirectoryStore())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func publishRequest() *entities.PublishSpaceRequest {
	return &entities.PublishSpaceRequest{
		LocationID:  1,
		OwnerID:     10,
		Date:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		StartMinute: 600,
		EndMinute:   720,
		Price:       100,
	}
}

func TestPublishSpace(t *testing.T) {
	spaces := newStubSpaceStore()
	svc := newTestSpaceService(spaces)

	resp, err := svc.PublishSpace(publishRequest())
	require.NoError(t, err)
	assert.Equal(t, db.SpaceStateOpen, resp.BookingState)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, "Central Parking", resp.LocationName)
	require.Len(t, spaces.created, 1)
}

func TestPublishSpaceRejectsNonPositivePrice(t *testing.T) {
	svc := newTestSpaceService(newStubSpaceStore())

	req := publishRequest()
	req.Price = 0
	_, err := svc.PublishSpace(req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestPublishSpaceEnforcesLeadTime(t *testing.T) {
	svc := newTestSpaceService(newStubSpaceStore())

	req := publishRequest()
	req.Date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_, err := svc.PublishSpace(req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	// Two days ahead is the earliest allowed date.
	req.Date = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err = svc.PublishSpace(req)
	assert.NoError(t, err)
}

func TestPublishSpaceRejectsForeignLocation(t *testing.T) {
	svc := newTestSpaceService(newStubSpaceStore())

	req := publishRequest()
	req.OwnerID = 99
	_, err := svc.PublishSpace(req)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestPublishSpaceSurfacesSlotConflict(t *testing.T) {
	spaces := newStubSpaceStore()
	spaces.createErr = apperrors.Conflict("this time slot overlaps with an existing space at the location")
	svc := newTestSpaceService(spaces)

	_, err := svc.PublishSpace(publishRequest())
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestSearchSpacesReturnsOnlyOfferedSpaces(t *testing.T) {
	futureDate := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	spaces := newStubSpaceStore()
	spaces.listed = []db.SpaceWithLocation{
		{Space: db.Space{ID: 1, SlotDate: futureDate, StartMinute: 600, EndMinute: 720, BookingState: db.SpaceStateOpen}, LocationName: "Central Parking", City: "Pune"},
		{Space: db.Space{ID: 2, SlotDate: futureDate, StartMinute: 600, EndMinute: 720, BookingState: db.SpaceStateReserved}},
		{Space: db.Space{ID: 3, SlotDate: futureDate, StartMinute: 600, EndMinute: 720, BookingState: db.SpaceStateExpired}},
		// Open but the slot ends within the availability cutoff.
		{Space: db.Space{ID: 4, SlotDate: entities.NormalizeDate(fixedNow), StartMinute: 600, EndMinute: 660, BookingState: db.SpaceStateOpen}},
	}
	svc := newTestSpaceService(spaces)

	offered, err := svc.SearchSpaces(repository.SpaceFilter{})
	require.NoError(t, err)
	require.Len(t, offered, 1)
	assert.Equal(t, 1, offered[0].ID)
	assert.Equal(t, "Central Parking", offered[0].LocationName)
}

func TestSearchSpacesReturnsEmptySliceNotNil(t *testing.T) {
	svc := newTestSpaceService(newStubSpaceStore())

	offered, err := svc.SearchSpaces(repository.SpaceFilter{})
	require.NoError(t, err)
	assert.NotNil(t, offered)
	assert.Empty(t, offered)
}
