package model

import "time"

// Service is a bookable salon treatment as stored in the `services`
// table. The name is unique and is what clients send when booking;
// appointments reference the row by id.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – unique service name (e.g. "Haircut & Styling").
//  PriceCents  – price in the smallest currency unit.
//  DurationMin – duration of the treatment in minutes.
//  Description – free-text description shown in the catalog.
//  Category    – coarse grouping (Hair, Skin, Waxing, Nails, Makeup,
//                Other) used for recommendations and display.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Service struct {
	ID          uint64    // services.id
	Name        string    // services.name
	PriceCents  uint64    // services.price_cents
	DurationMin uint32    // services.duration_min
	Description string    // services.description
	Category    string    // services.category
	CreatedAt   time.Time // services.created_at
	UpdatedAt   time.Time // services.updated_at
}
