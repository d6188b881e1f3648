package contracts

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

// RemoteGateway talks to the remote Mr Chemist API. The admin bearer token carried by ctx is
// forwarded on every call.
type RemoteGateway interface {
	FindByID(ctx context.Context, resource, id string, out interface{}) error
	Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error)
	Update(ctx context.Context, resource, id string, payload interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, resource, id string) error
	BatchDelete(ctx context.Context, resource string, ids []string) error
	List(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, error)
}
