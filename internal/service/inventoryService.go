package service

import (
	"context"

	"github.com/sirupsen/logrus"

	repository "github.com/sathwikhbhat/ticket-booking-system/internal/database/postgres"
	"github.com/sathwikhbhat/ticket-booking-system/internal/database/redis"
	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
)

type inventoryService struct {
	eventRepo repository.EventRepository
	venueRepo repository.VenueRepository
	cache     redis.InventoryCache
}

func NewInventoryService(
	eventRepo repository.EventRepository,
	venueRepo repository.VenueRepository,
	cache redis.InventoryCache,
) InventoryService {
	return &inventoryService{
		eventRepo: eventRepo,
		venueRepo: venueRepo,
		cache:     cache,
	}
}

// getEvent reads through the cache. Cache misses and cache errors both
// fall back to postgres; the cache is never the source of truth.
func (s *inventoryService) getEvent(ctx context.Context, eventID int64) (*entity.EventWithVenue, error) {
	if s.cache != nil {
		cached, err := s.cache.GetEvent(ctx, eventID)
		if err == nil {
			return cached, nil
		}
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetEvent(ctx, event); err != nil {
			logrus.Warnf("failed to cache event %d: %v", eventID, err)
		}
	}

	return event, nil
}

func (s *inventoryService) CheckAndQuote(ctx context.Context, eventID, ticketCount int64) (*CapacityQuote, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &CapacityQuote{
		Approved:  event.LeftCapacity >= ticketCount,
		UnitPrice: event.TicketPrice,
		Remaining: event.LeftCapacity,
	}, nil
}

func (s *inventoryService) GetAllEvents(ctx context.Context) ([]entity.EventInventoryResponse, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]entity.EventInventoryResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, entity.EventInventoryResponse{
			EventID:     event.ID,
			Event:       event.Name,
			Capacity:    event.LeftCapacity,
			Venue:       event.VenueName,
			TicketPrice: event.TicketPrice,
		})
	}

	return responses, nil
}

func (s *inventoryService) GetEvent(ctx context.Context, eventID int64) (*entity.EventInventoryResponse, error) {
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return &entity.EventInventoryResponse{
		EventID:     event.ID,
		Event:       event.Name,
		Capacity:    event.LeftCapacity,
		Venue:       event.VenueName,
		TicketPrice: event.TicketPrice,
	}, nil
}

func (s *inventoryService) GetVenue(ctx context.Context, venueID int64) (*entity.VenueInventoryResponse, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return &entity.VenueInventoryResponse{
		VenueID:       venue.ID,
		VenueName:     venue.Name,
		TotalCapacity: venue.TotalCapacity,
	}, nil
}

func (s *inventoryService) Decrement(ctx context.Context, eventID, ticketCount int64) (bool, int64, error) {
	applied, remaining, err := s.eventRepo.DecrementCapacity(ctx, eventID, ticketCount)
	if err != nil {
		return false, 0, err
	}

	if s.cache != nil {
		if err := s.cache.DeleteEvent(ctx, eventID); err != nil {
			logrus.Warnf("failed to invalidate event %d cache: %v", eventID, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"event_id":  eventID,
		"count":     ticketCount,
		"applied":   applied,
		"remaining": remaining,
	}).Info("capacity decrement")

	return applied, remaining, nil
}
