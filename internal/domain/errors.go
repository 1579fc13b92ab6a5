package domain

import "errors"

var (
	// ErrDataSourceMissing is returned when the food table cannot be found
	ErrDataSourceMissing = errors.New("food data source not found")

	// ErrSchemaMismatch is returned when the food table lacks the required columns
	ErrSchemaMismatch = errors.New("food data source schema mismatch")

	// ErrRecordParse is returned when a food row has non-numeric nutrition fields
	ErrRecordParse = errors.New("invalid food record")

	// ErrDuplicateCalorieKey is returned when a profile's calorie requirement is already indexed
	ErrDuplicateCalorieKey = errors.New("calorie requirement already indexed")

	// ErrInvalidProfile is returned when a user profile fails validation
	ErrInvalidProfile = errors.New("invalid user profile")

	// ErrInvalidCategory is returned when a dietary category label is unknown
	ErrInvalidCategory = errors.New("unknown dietary category")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
