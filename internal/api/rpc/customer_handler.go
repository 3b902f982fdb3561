package rpc

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/commerceos/customer-system/internal/api/metrics"
	"github.com/commerceos/customer-system/internal/core/ports"
	"github.com/commerceos/customer-system/internal/core/rpcerr"
)

func (s *Server) health(_ context.Context, _ []byte) (any, error) {
	return s.service.Health(), nil
}

func (s *Server) create(ctx context.Context, data []byte) (any, error) {
	var p createPayload
	if err := s.decode(data, &p); err != nil {
		return nil, err
	}

	view, err := s.service.Create(ctx, ports.CreateCustomerInput{
		Name:  p.CreateCustomerDto.Name,
		Email: p.CreateCustomerDto.Email,
	}, p.User.toDomain())
	if err != nil {
		return nil, err
	}

	metrics.CustomersCreatedTotal.Inc()
	return view, nil
}

func (s *Server) list(ctx context.Context, data []byte) (any, error) {
	var p listPayload
	if err := s.decode(data, &p); err != nil {
		return nil, err
	}

	return s.service.List(ctx, ports.PaginationInput{
		Page:  p.Pagination.Page,
		Limit: p.Pagination.Limit,
	}, p.User.toDomain())
}

func (s *Server) findByID(ctx context.Context, data []byte) (any, error) {
	p, err := s.decodeID(data)
	if err != nil {
		return nil, err
	}
	return s.service.FindByID(ctx, p.ID, p.User.toDomain())
}

func (s *Server) findByCode(ctx context.Context, data []byte) (any, error) {
	var p codePayload
	if err := s.decode(data, &p); err != nil {
		return nil, err
	}
	return s.service.FindByCode(ctx, p.Code, p.User.toDomain())
}

func (s *Server) update(ctx context.Context, data []byte) (any, error) {
	var p updatePayload
	if err := s.decode(data, &p); err != nil {
		return nil, err
	}
	if uuid.Validate(p.UpdateCustomerDto.ID) != nil {
		return nil, rpcerr.BadRequest("invalid id")
	}

	return s.service.Update(ctx, ports.UpdateCustomerInput{
		ID:    p.UpdateCustomerDto.ID,
		Name:  p.UpdateCustomerDto.Name,
		Email: p.UpdateCustomerDto.Email,
	}, p.User.toDomain())
}

func (s *Server) remove(ctx context.Context, data []byte) (any, error) {
	p, err := s.decodeID(data)
	if err != nil {
		return nil, err
	}
	return s.service.Remove(ctx, p.ID, p.User.toDomain())
}

func (s *Server) restore(ctx context.Context, data []byte) (any, error) {
	p, err := s.decodeID(data)
	if err != nil {
		return nil, err
	}
	return s.service.Restore(ctx, p.ID, p.User.toDomain())
}

// decode unmarshals and shape-validates a payload. Failures are classified
// BadRequest before any service or store is touched.
func (s *Server) decode(data []byte, into any) error {
	if err := json.Unmarshal(data, into); err != nil {
		return rpcerr.BadRequest("invalid payload")
	}
	if err := s.validate.Validate(into); err != nil {
		return rpcerr.BadRequest(err.Error())
	}
	return nil
}

// decodeID handles the id-keyed patterns: a syntactically invalid id is
// rejected here, so it never reaches the store or the identity resolver.
func (s *Server) decodeID(data []byte) (*idPayload, error) {
	var p idPayload
	if err := s.decode(data, &p); err != nil {
		return nil, err
	}
	if uuid.Validate(p.ID) != nil {
		return nil, rpcerr.BadRequest("invalid id")
	}
	return &p, nil
}
