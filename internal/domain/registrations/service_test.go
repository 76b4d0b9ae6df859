package registrations

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/campuslane/server/internal/auth"
	"github.com/campuslane/server/internal/domain/events"
	"github.com/campuslane/server/internal/domain/ids"
	"github.com/campuslane/server/internal/domain/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// memoryRepo enforces the (event_id, user_id) uniqueness constraint under a
// mutex, mirroring what the Postgres unique index guarantees.
type memoryRepo struct {
	mu    sync.Mutex
	rows  map[string]*Registration
	users map[string]users.User
	evts  map[string]events.Event
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		rows:  make(map[string]*Registration),
		users: make(map[string]users.User),
		evts:  make(map[string]events.Event),
	}
}

func (m *memoryRepo) Create(_ context.Context, params CreateParams) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.EventID == params.EventID && row.UserID == params.UserID {
			return nil, ErrAlreadyRegistered
		}
	}
	row := &Registration{
		ID:        params.ID,
		EventID:   params.EventID,
		UserID:    params.UserID,
		Status:    StatusRegistered,
		CreatedAt: time.Now(),
	}
	m.rows[params.ID] = row
	copied := *row
	return &copied, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *row
	return &copied, nil
}

func (m *memoryRepo) FindByEventAndUser(_ context.Context, eventID, userID string) (*Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.EventID == eventID && row.UserID == userID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID string) ([]RegistrationWithEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []RegistrationWithEvent
	for _, row := range m.rows {
		if row.UserID != userID || row.Status != StatusRegistered {
			continue
		}
		out = append(out, RegistrationWithEvent{Registration: *row, Event: m.evts[row.EventID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryRepo) ListUsersByEvent(_ context.Context, eventID string) ([]users.PublicProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []*Registration
	for _, row := range m.rows {
		if row.EventID == eventID && row.Status == StatusRegistered {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	out := make([]users.PublicProfile, 0, len(rows))
	for _, row := range rows {
		user := m.users[row.UserID]
		out = append(out, users.PublicProfile{ID: user.ID, Name: user.Name, Roll: user.Roll, Phone: user.Phone, Email: user.Email})
	}
	return out, nil
}

func (m *memoryRepo) CountsByOwner(_ context.Context, ownerID string) ([]EventCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []EventCount
	for _, event := range m.evts {
		if event.CreatedBy != ownerID {
			continue
		}
		count := 0
		for _, row := range m.rows {
			if row.EventID == event.ID && row.Status == StatusRegistered {
				count++
			}
		}
		out = append(out, EventCount{Event: event, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Event.ID < out[j].Event.ID })
	return out, nil
}

// eventsRepo adapts memoryRepo's event map to the events.Repository lookups
// the service needs.
type eventsRepo struct {
	repo *memoryRepo
}

func (e eventsRepo) GetByID(_ context.Context, id string) (*events.Event, error) {
	e.repo.mu.Lock()
	defer e.repo.mu.Unlock()
	event, ok := e.repo.evts[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	return &event, nil
}

func (e eventsRepo) Create(_ context.Context, _ events.CreateParams) (*events.Event, error) {
	panic("not used")
}

func (e eventsRepo) GetWithOrganizer(_ context.Context, _ string) (*events.EventWithOrganizer, error) {
	panic("not used")
}

func (e eventsRepo) List(_ context.Context, _ events.Filters, _ events.Pagination) (events.ListResult, error) {
	panic("not used")
}

func (e eventsRepo) ListByOwner(_ context.Context, _ string, _ events.Pagination) (events.ListResult, error) {
	panic("not used")
}

func (e eventsRepo) Update(_ context.Context, _ string, _ events.UpdateParams) (*events.Event, error) {
	panic("not used")
}

func (e eventsRepo) Delete(_ context.Context, _ string) error {
	panic("not used")
}

type fixture struct {
	service *Service
	repo    *memoryRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	repo := newMemoryRepo()
	return fixture{
		service: NewService(repo, eventsRepo{repo: repo}),
		repo:    repo,
	}
}

func (f fixture) addUser(t *testing.T, name, role string) string {
	t.Helper()
	id, err := ids.NewULID()
	require.NoError(t, err)
	f.repo.users[id] = users.User{ID: id, Name: name, Email: name + "@campus.test", Role: role}
	return id
}

func (f fixture) addEvent(t *testing.T, ownerID, title string) string {
	t.Helper()
	id, err := ids.NewULID()
	require.NoError(t, err)
	f.repo.evts[id] = events.Event{ID: id, Title: title, Location: "Main Hall", CreatedBy: ownerID}
	return id
}

func TestRegisterCreatesRegistration(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	created, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
	require.NoError(t, err)
	require.Equal(t, StatusRegistered, created.Status)
	require.Equal(t, eventID, created.EventID)
	require.Equal(t, student, created.UserID)
	require.Equal(t, "Tech Fest", created.Event.Title)
	require.NotEmpty(t, created.ID)
}

func TestRegisterRejectsNonStudents(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	eventID := f.addEvent(t, admin, "Tech Fest")

	_, err := f.service.Register(context.Background(), admin, string(auth.RoleAdmin), eventID)
	require.ErrorIs(t, err, ErrStudentsOnly)
}

func TestRegisterRequiresEventID(t *testing.T) {
	f := newFixture(t)
	student := f.addUser(t, "student", string(auth.RoleStudent))

	_, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), "  ")
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "eventId", validationErr.Field)
}

func TestRegisterUnknownEvent(t *testing.T) {
	f := newFixture(t)
	student := f.addUser(t, "student", string(auth.RoleStudent))

	_, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), "01HQZX3Y4K6F7G8H9J0K1M2N3P")
	require.ErrorIs(t, err, events.ErrNotFound)
}

func TestRegisterTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	_, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}

// Concurrent duplicate attempts must produce exactly one winner; the repo's
// uniqueness constraint, not the pre-flight check, decides it.
func TestRegisterConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	const attempts = 32
	var successes, conflicts int64
	var mu sync.Mutex

	var group errgroup.Group
	for i := 0; i < attempts; i++ {
		group.Go(func() error {
			_, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyRegistered):
				conflicts++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
	require.EqualValues(t, 1, successes)
	require.EqualValues(t, attempts-1, conflicts)

	mine, err := f.service.ListMine(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestWithdrawUnknownRegistration(t *testing.T) {
	f := newFixture(t)
	student := f.addUser(t, "student", string(auth.RoleStudent))

	err := f.service.Withdraw(context.Background(), student, "01HQZX3Y4K6F7G8H9J0K1M2N3P")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWithdrawByOtherStudentForbidden(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	owner := f.addUser(t, "owner", string(auth.RoleStudent))
	other := f.addUser(t, "other", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	created, err := f.service.Register(context.Background(), owner, string(auth.RoleStudent), eventID)
	require.NoError(t, err)

	err = f.service.Withdraw(context.Background(), other, created.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	// Registration must survive the rejected withdrawal.
	_, err = f.repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
}

func TestWithdrawRemovesFromListMine(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	first := f.addEvent(t, admin, "Tech Fest")
	second := f.addEvent(t, admin, "Hackathon")

	kept, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), first)
	require.NoError(t, err)
	dropped, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), second)
	require.NoError(t, err)

	require.NoError(t, f.service.Withdraw(context.Background(), student, dropped.ID))

	mine, err := f.service.ListMine(context.Background(), student)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, kept.ID, mine[0].ID)
}

func TestReRegisterAfterWithdrawMintsNewRecord(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	first, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
	require.NoError(t, err)
	require.NoError(t, f.service.Withdraw(context.Background(), student, first.ID))

	second, err := f.service.Register(context.Background(), student, string(auth.RoleStudent), eventID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestListForEventRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	student := f.addUser(t, "student", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	_, err := f.service.ListForEvent(context.Background(), student, string(auth.RoleStudent), eventID)
	require.ErrorIs(t, err, ErrAdminsOnly)
}

func TestListForEventHidesOtherAdminsEvents(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, "owner-admin", string(auth.RoleAdmin))
	other := f.addUser(t, "other-admin", string(auth.RoleAdmin))
	eventID := f.addEvent(t, owner, "Tech Fest")

	// Not owned and nonexistent are reported identically.
	_, err := f.service.ListForEvent(context.Background(), other, string(auth.RoleAdmin), eventID)
	require.ErrorIs(t, err, events.ErrNotOwner)

	_, err = f.service.ListForEvent(context.Background(), other, string(auth.RoleAdmin), "01HQZX3Y4K6F7G8H9J0K1M2N3P")
	require.ErrorIs(t, err, events.ErrNotOwner)
}

func TestListForEventReturnsRoster(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	alice := f.addUser(t, "alice", string(auth.RoleStudent))
	bob := f.addUser(t, "bob", string(auth.RoleStudent))
	eventID := f.addEvent(t, admin, "Tech Fest")

	_, err := f.service.Register(context.Background(), alice, string(auth.RoleStudent), eventID)
	require.NoError(t, err)
	_, err = f.service.Register(context.Background(), bob, string(auth.RoleStudent), eventID)
	require.NoError(t, err)

	roster, err := f.service.ListForEvent(context.Background(), admin, string(auth.RoleAdmin), eventID)
	require.NoError(t, err)
	require.Equal(t, "Tech Fest", roster.Event.Title)
	require.Len(t, roster.Students, 2)
	require.Equal(t, "alice", roster.Students[0].Name)
	require.Equal(t, "bob", roster.Students[1].Name)
}

func TestListMyEventsWithCounts(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", string(auth.RoleAdmin))
	otherAdmin := f.addUser(t, "other", string(auth.RoleAdmin))
	alice := f.addUser(t, "alice", string(auth.RoleStudent))
	bob := f.addUser(t, "bob", string(auth.RoleStudent))

	fest := f.addEvent(t, admin, "Tech Fest")
	empty := f.addEvent(t, admin, "Career Day")
	f.addEvent(t, otherAdmin, "Other Event")

	_, err := f.service.Register(context.Background(), alice, string(auth.RoleStudent), fest)
	require.NoError(t, err)
	withdrawn, err := f.service.Register(context.Background(), bob, string(auth.RoleStudent), fest)
	require.NoError(t, err)
	require.NoError(t, f.service.Withdraw(context.Background(), bob, withdrawn.ID))

	counts, err := f.service.ListMyEventsWithCounts(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, counts, 2)

	byID := map[string]int{}
	for _, entry := range counts {
		byID[entry.Event.ID] = entry.Count
	}
	require.Equal(t, 1, byID[fest])
	require.Equal(t, 0, byID[empty])
}
