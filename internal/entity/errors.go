package entity

import "errors"

var (
	// Inventory errors
	ErrEventNotFound     = errors.New("event not found")
	ErrVenueNotFound     = errors.New("venue not found")
	ErrNotEnoughCapacity = errors.New("not enough capacity")

	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")

	// Order errors
	ErrOrderNotFound        = errors.New("order not found")
	ErrDuplicateReservation = errors.New("reservation already settled")
	ErrOrderAlreadySettled  = errors.New("order already settled")

	// Infrastructure errors
	ErrPublishFailed = errors.New("publish failed")
)
