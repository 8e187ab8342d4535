package domain

// User is the sanitized identity record. The password hash never leaves
// the repository layer.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Requester is the identity resolved from a bearer token.
type Requester struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	JTI    string `json:"-"`
}
