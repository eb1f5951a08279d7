// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns: domain entities carry no GORM tags, persistence models carry all
// table mappings, and mappers convert between the two.
package models
