package clients

// UpsertClientRequest creates or resolves a client identity. An empty name
// is accepted; raw email and phone are hashed before storage and never kept.
type UpsertClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}
