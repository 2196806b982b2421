package contracts

import "errors"

var (
	// ErrInvalidMetricKind is returned for an unrecognized metric identifier
	ErrInvalidMetricKind = errors.New("invalid metric kind")

	// ErrInvalidCategoryKind is returned for a category key the roster does not carry
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	// ErrUnknownRecord is returned when no record has the requested identity
	ErrUnknownRecord = errors.New("unknown record")

	// ErrUnknownGroup is returned when no record carries the requested category value
	ErrUnknownGroup = errors.New("unknown group")

	// ErrNoGeneration is returned before the first roster generation is installed
	ErrNoGeneration = errors.New("no roster generation installed")

	// ErrInvalidUnit is returned for a unit name missing from the board config
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnknownDataset is returned when a source holds no roster for the requested year
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrSchema is returned when raw rows violate the ingestion contract
	ErrSchema = errors.New("schema violation")
)
