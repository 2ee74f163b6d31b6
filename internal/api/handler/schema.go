package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the acknowledgment envelope for operations that return
// no resource.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Products ---

type createProductRequest struct {
	Name  string   `json:"name"  validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

type updateProductRequest struct {
	Name  *string  `json:"name"  validate:"omitempty,min=1"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

// productResponse is the transport view of a product, intentionally separate
// from the domain type so the JSON contract is not coupled to internal
// changes.
type productResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Seller string  `json:"seller"`
}
