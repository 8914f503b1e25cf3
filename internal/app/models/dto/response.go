package dto

// APIResponse is the envelope of every API response. Exactly one of Data and
// Error is set.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// MessageResponse is the payload of actions that return nothing else.
type MessageResponse struct {
	Message string `json:"message" example:"Signed out"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewSuccessResponse wraps data in the response envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}

// NewErrorResponse wraps an error detail in the response envelope
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{Error: detail}
}

// DeleteResponse reports the outcome of a delete. Deleting a missing id is
// not an error; Removed is false then.
type DeleteResponse struct {
	ID      string `json:"id"`
	Removed bool   `json:"removed"`
}
