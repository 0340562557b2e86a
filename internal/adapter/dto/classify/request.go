package classify

// BatchRequest classifies several meetings in one call
type BatchRequest struct {
	IDs []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
}
