package repository

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres, mongo) inside this directory.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// Directions accepted by Order.
const (
	ASC  = "ASC"
	DESC = "DESC"
)

// Order selects the field and direction for list queries.
// Field must pass the repository's order-field whitelist (see IsMemberOrderField);
// the zero Order means the implementation's default ordering.
type Order struct {
	Field     string
	Direction string
}
