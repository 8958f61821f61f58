package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
	"github.com/apper-canvas/contact-haptic-matrix/internal/domain"
	"github.com/apper-canvas/contact-haptic-matrix/internal/service"
	"github.com/apper-canvas/contact-haptic-matrix/testutil"
)

// These tests exercise the services through the real HTTP client against a
// FakeApper, covering the full wire round trip that the mock-based tests
// skip.

func TestContactRoundTrip(t *testing.T) {
	fake := testutil.NewFakeApper(t)
	spy := &spyNotifier{}
	svc := service.NewContactService(fake.NewClient(), spy)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.Contact{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Photo:     "https://img.example.com/jane.png",
		Tags:      []string{"vip", "east"},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// Tags cross the wire as a single comma-joined string.
	row := fake.Row("contact_c", created.ID)
	require.NotNil(t, row)
	assert.Equal(t, "vip,east", row["tags_c"])
	assert.Equal(t, row["created_at_c"], row["updated_at_c"])
	assert.Equal(t, "user-1", row["CreatedBy"])

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"vip", "east"}, got.Tags)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "user-1", got.Audit.CreatedBy)

	updated, err := svc.Update(ctx, "user-1", created.ID, domain.Contact{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@corp.example.com",
		Tags:      []string{"vip"},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@corp.example.com", updated.Email)
	assert.Equal(t, []string{"vip"}, updated.Tags)

	// Updates refresh updated_at_c but leave created_at_c alone.
	row = fake.Row("contact_c", created.ID)
	assert.Equal(t, "user-1", row["ModifiedBy"])
	assert.NotEmpty(t, row["created_at_c"])

	deleted, err := svc.Delete(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, spy.errors, 1, "only the final missing-record lookup notifies")
}

func TestContactRoundTrip_ForbiddenForOtherUsersRecord(t *testing.T) {
	fake := testutil.NewFakeApper(t)
	spy := &spyNotifier{}
	svc := service.NewContactService(fake.NewClient(), spy)
	ctx := context.Background()

	id := fake.Seed("contact_c", map[string]any{
		"first_name_c": "Owned",
		"CreatedBy":    "someone-else",
	})

	_, err := svc.Update(ctx, "user-1", id, domain.Contact{FirstName: "Taken"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	deleted, err := svc.Delete(ctx, "user-1", id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, deleted)

	// The record is untouched.
	row := fake.Row("contact_c", id)
	require.NotNil(t, row)
	assert.Equal(t, "Owned", row["first_name_c"])
}

func TestLeadRoundTrip_StatusDefaultsToNew(t *testing.T) {
	fake := testutil.NewFakeApper(t)
	spy := &spyNotifier{}
	svc := service.NewLeadService(fake.NewClient(), spy)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.Lead{FirstName: "Sam", LastName: "Lee"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, first.Status)

	second, err := svc.Create(ctx, domain.Lead{FirstName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNew, second.Status)

	third, err := svc.Create(ctx, domain.Lead{FirstName: "Kim", Status: domain.StatusQualified})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQualified, third.Status)

	leads := svc.List(ctx)
	require.Len(t, leads, 3)
	assert.Empty(t, spy.errors)
}

func TestLeadRoundTrip_SystemTagsSurviveUpdate(t *testing.T) {
	fake := testutil.NewFakeApper(t)
	spy := &spyNotifier{}
	svc := service.NewLeadService(fake.NewClient(), spy)
	ctx := context.Background()

	id := fake.Seed("leads_c", map[string]any{
		"first_name_c": "Sam",
		"status_c":     "Contacted",
		"Tags":         "inbound, webinar",
		"CreatedBy":    "user-1",
	})

	updated, err := svc.Update(ctx, "user-1", id, domain.Lead{
		FirstName: "Sam",
		Status:    domain.StatusQualified,
		Tags:      []string{"would-be-overwrite"},
	})
	require.NoError(t, err)

	// The Tags system field is read-only from this layer: the stored value
	// comes back untouched no matter what the input carried.
	assert.Equal(t, []string{"inbound", "webinar"}, updated.Tags)
	assert.Equal(t, domain.StatusQualified, updated.Status)
	assert.Equal(t, "inbound, webinar", fake.Row("leads_c", id)["Tags"])
}

func TestRoundTrip_UnreachableServerDegrades(t *testing.T) {
	spy := &spyNotifier{}

	// A dead server is a transport failure: list views degrade to empty,
	// point reads surface the transport sentinel.
	svc := service.NewContactService(apper.New("http://127.0.0.1:1", "test-project", "test-key"), spy)

	got := svc.List(context.Background())
	assert.Empty(t, got)
	require.Len(t, spy.errors, 1)
	assert.Equal(t, "Failed to load contacts", spy.errors[0])

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrTransport)
}
