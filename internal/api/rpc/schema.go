package rpc

import "github.com/commerceos/customer-system/internal/core/domain"

// Payload schemas for the inbound message patterns. Field names follow the
// wire contract shared with the gateway, so they are validated here before
// anything reaches the lifecycle service.

// callerPayload is the pre-authenticated actor the gateway attaches to
// every request.
type callerPayload struct {
	ID       string        `json:"id" validate:"required"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Roles    []domain.Role `json:"roles"`
}

func (p callerPayload) toDomain() domain.User {
	return domain.User{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Roles:    p.Roles,
	}
}

type createCustomerInput struct {
	Name  string `json:"name" validate:"required,min=3"`
	Email string `json:"email" validate:"required,email"`
}

type createPayload struct {
	CreateCustomerDto createCustomerInput `json:"createCustomerDto" validate:"required"`
	User              callerPayload       `json:"user" validate:"required"`
}

type paginationInput struct {
	Page  int `json:"page" validate:"required,min=1"`
	Limit int `json:"limit" validate:"required,min=1"`
}

type listPayload struct {
	Pagination paginationInput `json:"pagination" validate:"required"`
	User       callerPayload   `json:"user" validate:"required"`
}

type idPayload struct {
	ID   string        `json:"id" validate:"required"`
	User callerPayload `json:"user" validate:"required"`
}

type codePayload struct {
	Code int64         `json:"code" validate:"required,min=1"`
	User callerPayload `json:"user" validate:"required"`
}

// updateCustomerInput carries the target id plus the partial mutable
// fields; absent fields stay untouched.
type updateCustomerInput struct {
	ID    string  `json:"id" validate:"required"`
	Name  *string `json:"name,omitempty" validate:"omitempty,min=3"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type updatePayload struct {
	UpdateCustomerDto updateCustomerInput `json:"updateCustomerDto" validate:"required"`
	User              callerPayload       `json:"user" validate:"required"`
}
