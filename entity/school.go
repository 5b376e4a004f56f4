package entity

import (
	"fmt"
	"math"
)

// MaxPopulation keeps populations representable as a GraphQL Int.
const MaxPopulation = math.MaxInt32

var ErrPopulationRange = fmt.Errorf("field school_population must be between 0 and %d", MaxPopulation)

func ValidPopulation(n int) bool {
	return n >= 0 && n <= MaxPopulation
}

// SchoolStatus is the lifecycle state of a school. The only transition is
// ACTIVE -> INACTIVE.
type SchoolStatus string

const (
	StatusActive   SchoolStatus = "ACTIVE"
	StatusInactive SchoolStatus = "INACTIVE"
)

func (s SchoolStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Address is embedded in a School and has no identity of its own.
type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
}

// School is a single record of the persisted collection.
type School struct {
	ID         int          `json:"id" bson:"id"`
	Name       string       `json:"school_name" bson:"school_name"`
	Population int          `json:"school_population" bson:"school_population"`
	Address    Address      `json:"address" bson:"address"`
	Status     SchoolStatus `json:"status" bson:"status"`
}

// IsActive checks if the school is active.
func (s *School) IsActive() bool {
	return s.Status == StatusActive
}

// SchoolInput carries the fields of a school to be created. The id is always
// assigned by the core.
type SchoolInput struct {
	Name       string       `json:"school_name" validate:"required"`
	Population int          `json:"school_population" validate:"gte=0,lte=2147483647"`
	Address    Address      `json:"address"`
	Status     SchoolStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

// SchoolUpdate lists the fields a partial update may overwrite. Only fields
// marked as set are applied.
type SchoolUpdate struct {
	Name       Optional[string]       `json:"school_name"`
	Population Optional[int]          `json:"school_population"`
	Address    Optional[Address]      `json:"address"`
	Status     Optional[SchoolStatus] `json:"status"`
}

// Empty reports whether the update carries no fields at all.
func (u SchoolUpdate) Empty() bool {
	return !u.Name.Set && !u.Population.Set && !u.Address.Set && !u.Status.Set
}

// ListQuery describes a read over the collection. Nil fields are not applied.
type ListQuery struct {
	Name   *string `json:"name,omitempty"`
	SortBy *string `json:"sort_by,omitempty"`
	Offset *int    `json:"offset,omitempty"`
	Limit  *int    `json:"limit,omitempty"`
}
