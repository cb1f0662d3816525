package entity

type Event struct {
	ID            int64   `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	TotalCapacity int64   `json:"total_capacity" db:"total_capacity"`
	LeftCapacity  int64   `json:"left_capacity" db:"left_capacity"`
	TicketPrice   float64 `json:"ticket_price" db:"ticket_price"`
	VenueID       int64   `json:"venue_id" db:"venue_id"`
}

type Venue struct {
	ID            int64  `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	TotalCapacity int64  `json:"total_capacity" db:"total_capacity"`
}

type EventWithVenue struct {
	Event
	VenueName string `json:"venue_name"`
}

type EventInventoryResponse struct {
	EventID     int64   `json:"eventId"`
	Event       string  `json:"event"`
	Capacity    int64   `json:"capacity"`
	Venue       string  `json:"venue"`
	TicketPrice float64 `json:"ticketPrice"`
}

type VenueInventoryResponse struct {
	VenueID       int64  `json:"venueId"`
	VenueName     string `json:"venueName"`
	TotalCapacity int64  `json:"totalCapacity"`
}
