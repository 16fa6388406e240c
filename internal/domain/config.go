package domain

// Limits bounds document payloads and search paging.
type Limits struct {
	MaxTitleLen     int
	MaxContentLen   int
	MaxTags         int
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the limits used when configuration leaves them unset.
func DefaultLimits() Limits {
	return Limits{
		MaxTitleLen:     200,
		MaxContentLen:   200000,
		MaxTags:         20,
		DefaultPageSize: 10,
		MaxPageSize:     50,
	}
}
