package feedback

import "laundry/internal/pkg/errs"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a score from MinRating to MaxRating.
type Rating int

func NewRating(name string, value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return 0, errs.NewValueIsOutOfRangeError(name, value, MinRating, MaxRating)
	}
	return Rating(value), nil
}

// NewOptionalRating accepts nil for an omitted sub-rating.
func NewOptionalRating(name string, value *int) (*Rating, error) {
	if value == nil {
		return nil, nil //nolint:nilnil // omitted sub-rating
	}
	r, err := NewRating(name, *value)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r Rating) Int() int { return int(r) }
