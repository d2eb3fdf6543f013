package notion

import (
	"context"
	"errors"
	"net/http"

	"github.com/jomei/notionapi"
)

// ErrNotConfigured is returned when the target database id is empty.
var ErrNotConfigured = errors.New("notion database not configured")

// DatabaseQuerier is the part of notionapi.DatabaseService used here.
type DatabaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// PageCreator is the part of notionapi.PageService used here.
type PageCreator interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
}

// BlockService is the part of notionapi.BlockService used here.
type BlockService interface {
	GetChildren(ctx context.Context, id notionapi.BlockID, pagination *notionapi.Pagination) (*notionapi.GetChildrenResponse, error)
	AppendChildren(ctx context.Context, id notionapi.BlockID, req *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error)
}

// NewClient creates an API client for token. A nil httpClient uses the
// library default.
func NewClient(token string, httpClient *http.Client) *notionapi.Client {
	if httpClient == nil {
		return notionapi.NewClient(notionapi.Token(token))
	}
	return notionapi.NewClient(notionapi.Token(token), notionapi.WithHTTPClient(httpClient))
}
