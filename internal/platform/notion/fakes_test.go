package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

type fakeDatabase struct {
	requests  []*notionapi.DatabaseQueryRequest
	responses []*notionapi.DatabaseQueryResponse
	err       error
}

func (f *fakeDatabase) Query(_ context.Context, _ notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	copied := *req
	f.requests = append(f.requests, &copied)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.requests) - 1
	if i >= len(f.responses) {
		return &notionapi.DatabaseQueryResponse{}, nil
	}
	return f.responses[i], nil
}

type fakePages struct {
	created []*notionapi.PageCreateRequest
	err     error
}

func (f *fakePages) Create(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.created = append(f.created, req)
	if f.err != nil {
		return nil, f.err
	}
	return &notionapi.Page{ID: notionapi.ObjectID("page-1")}, nil
}

type fakeBlocks struct {
	appended map[notionapi.BlockID][][]notionapi.Block
	children map[notionapi.BlockID][]notionapi.Block
	pageSize int
	reads    int
	err      error
}

func newFakeBlocks() *fakeBlocks {
	return &fakeBlocks{
		appended: map[notionapi.BlockID][][]notionapi.Block{},
		children: map[notionapi.BlockID][]notionapi.Block{},
		pageSize: 2,
	}
}

func (f *fakeBlocks) AppendChildren(_ context.Context, id notionapi.BlockID, req *notionapi.AppendBlockChildrenRequest) (*notionapi.AppendBlockChildrenResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.appended[id] = append(f.appended[id], req.Children)
	return &notionapi.AppendBlockChildrenResponse{}, nil
}

// GetChildren pages through children pageSize blocks at a time, using the
// start index as the cursor.
func (f *fakeBlocks) GetChildren(_ context.Context, id notionapi.BlockID, p *notionapi.Pagination) (*notionapi.GetChildrenResponse, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	all := f.children[id]
	start := 0
	if p != nil && p.StartCursor != "" {
		_, _ = fmt.Sscanf(string(p.StartCursor), "%d", &start)
	}
	end := start + f.pageSize
	if end > len(all) {
		end = len(all)
	}
	resp := &notionapi.GetChildrenResponse{Results: all[start:end]}
	if end < len(all) {
		resp.HasMore = true
		setCursor(&resp.NextCursor, fmt.Sprintf("%d", end))
	}
	return resp, nil
}

func setCursor[T ~string](dst *T, v string) { *dst = T(v) }
