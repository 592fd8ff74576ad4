package request

// SeatsRequest is the body of a seat submission.
type SeatsRequest struct {
	Seats []int64 `json:"seats" validate:"dive,gt=0"`
}
