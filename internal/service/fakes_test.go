package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

// memStore is an in-memory stand-in for the postgres repositories. All
// methods take one lock, so DecrementCapacity and SettleDecrement are
// atomic the same way the conditional UPDATE is.
type memStore struct {
	mu      sync.Mutex
	events  map[int64]*entity.EventWithVenue
	venues  map[int64]*entity.Venue
	orders  map[string]*entity.Order
	nextID  int64
	failure error
}

func newMemStore() *memStore {
	return &memStore{
		events: make(map[int64]*entity.EventWithVenue),
		venues: make(map[int64]*entity.Venue),
		orders: make(map[string]*entity.Order),
	}
}

func (s *memStore) addEvent(event entity.EventWithVenue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = &event
}

func (s *memStore) addVenue(venue entity.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[venue.ID] = &venue
}

func (s *memStore) setFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) orderByKey(key string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[key]; ok {
		dup := *o
		return &dup
	}
	return nil
}

func (s *memStore) remaining(eventID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[eventID].LeftCapacity
}

// EventRepository

func (s *memStore) GetByID(ctx context.Context, id int64) (*entity.EventWithVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	event, ok := s.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	dup := *event
	return &dup, nil
}

func (s *memStore) GetAll(ctx context.Context) ([]*entity.EventWithVenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	var events []*entity.EventWithVenue
	for _, event := range s.events {
		dup := *event
		events = append(events, &dup)
	}
	return events, nil
}

func (s *memStore) DecrementCapacity(ctx context.Context, eventID, count int64) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decrementLocked(eventID, count)
}

func (s *memStore) decrementLocked(eventID, count int64) (bool, int64, error) {
	if s.failure != nil {
		return false, 0, s.failure
	}
	event, ok := s.events[eventID]
	if !ok {
		return false, 0, entity.ErrEventNotFound
	}
	if event.LeftCapacity < count {
		return false, event.LeftCapacity, nil
	}
	event.LeftCapacity -= count
	return true, event.LeftCapacity, nil
}

// VenueRepository

func (s *memStore) GetVenueByID(ctx context.Context, id int64) (*entity.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	venue, ok := s.venues[id]
	if !ok {
		return nil, entity.ErrVenueNotFound
	}
	dup := *venue
	return &dup, nil
}

// OrderRepository

func (s *memStore) Create(ctx context.Context, order *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	if _, ok := s.orders[order.DedupKey]; ok {
		return entity.ErrDuplicateReservation
	}
	s.nextID++
	order.ID = s.nextID
	order.PlacedAt = time.Now()
	dup := *order
	s.orders[order.DedupKey] = &dup
	return nil
}

func (s *memStore) GetByDedupKey(ctx context.Context, dedupKey string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	order, ok := s.orders[dedupKey]
	if !ok {
		return nil, entity.ErrOrderNotFound
	}
	dup := *order
	return &dup, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, order := range s.orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return entity.ErrOrderNotFound
}

func (s *memStore) SettleDecrement(ctx context.Context, orderID, eventID, ticketCount int64) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var order *entity.Order
	for _, o := range s.orders {
		if o.ID == orderID {
			order = o
			break
		}
	}
	if order == nil {
		return false, 0, entity.ErrOrderNotFound
	}
	// Same claim semantics as the real transaction: only a persisted order
	// may decrement.
	if order.Status != entity.OrderStatusPersisted {
		return false, 0, entity.ErrOrderAlreadySettled
	}
	applied, remaining, err := s.decrementLocked(eventID, ticketCount)
	if err != nil {
		return false, 0, err
	}
	if applied {
		order.Status = entity.OrderStatusDecremented
	} else {
		order.Status = entity.OrderStatusOversold
	}
	return applied, remaining, nil
}

func (s *memStore) GetStuckOrders(ctx context.Context, before time.Time) ([]*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return nil, s.failure
	}
	var stuck []*entity.Order
	for _, order := range s.orders {
		if order.Status == entity.OrderStatusPersisted && order.PlacedAt.Before(before) {
			dup := *order
			stuck = append(stuck, &dup)
		}
	}
	return stuck, nil
}

// venueRepoAdapter exposes memStore under the VenueRepository interface
// without colliding with the event GetByID method.
type venueRepoAdapter struct {
	store *memStore
}

func (a *venueRepoAdapter) GetByID(ctx context.Context, id int64) (*entity.Venue, error) {
	return a.store.GetVenueByID(ctx, id)
}

// fakeCustomerRepo

type fakeCustomerRepo struct {
	customers map[int64]*entity.Customer
}

func newFakeCustomerRepo(customers ...entity.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[int64]*entity.Customer)}
	for i := range customers {
		repo.customers[customers[i].ID] = &customers[i]
	}
	return repo
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	customer, ok := r.customers[id]
	if !ok {
		return nil, entity.ErrCustomerNotFound
	}
	return customer, nil
}

// fakeProducer records published facts.

type fakeProducer struct {
	mu        sync.Mutex
	published []entity.ReservationAccepted
	err       error
}

func (p *fakeProducer) PublishReservation(ctx context.Context, fact *entity.ReservationAccepted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, *fact)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

// fakeCache is a map-backed InventoryCache.

type fakeCache struct {
	mu     sync.Mutex
	events map[int64]*entity.EventWithVenue
	sets   int
	hits   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{events: make(map[int64]*entity.EventWithVenue)}
}

var errCacheMiss = errors.New("cache miss")

func (c *fakeCache) SetEvent(ctx context.Context, event *entity.EventWithVenue) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	dup := *event
	c.events[event.ID] = &dup
	c.sets++
	return nil
}

func (c *fakeCache) GetEvent(ctx context.Context, eventID int64) (*entity.EventWithVenue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	event, ok := c.events[eventID]
	if !ok {
		return nil, errCacheMiss
	}
	c.hits++
	dup := *event
	return &dup, nil
}

func (c *fakeCache) DeleteEvent(ctx context.Context, eventID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.events, eventID)
	return nil
}
