package platformclient

import (
	"context"
	"sync"

	"github.com/ofauto/backend/internal/domain/platform"
)

// FakeClient is a scriptable platform.Client for tests. Unset function
// fields return zero values; call counts are recorded per method.
type FakeClient struct {
	PlatformKind platform.Kind

	AuthenticateFn      func(ctx context.Context) (*platform.Session, error)
	RefreshTokenFn      func(ctx context.Context) (*platform.Session, error)
	GetProfileFn        func(ctx context.Context) (*platform.Profile, error)
	PostContentFn       func(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error)
	GetContentMetricsFn func(ctx context.Context, contentExternalID string) (*platform.Metrics, error)
	GetDirectMessagesFn func(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error)
	SendDirectMessageFn func(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error)
	GetCommentsFn       func(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error)
	PostCommentFn       func(ctx context.Context, contentExternalID, body string) (*platform.Comment, error)
	GetAnalyticsFn      func(ctx context.Context, r platform.DateRange) (*platform.Analytics, error)
	CheckAPIStatusFn    func(ctx context.Context) (*platform.APIStatus, error)

	mu    sync.Mutex
	calls map[string]int
}

// NewFakeClient creates a fake client reporting the given kind
func NewFakeClient(kind platform.Kind) *FakeClient {
	return &FakeClient{PlatformKind: kind, calls: make(map[string]int)}
}

// Calls returns how many times the named method was invoked
func (f *FakeClient) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeClient) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[method]++
}

func (f *FakeClient) Kind() platform.Kind {
	return f.PlatformKind
}

func (f *FakeClient) Authenticate(ctx context.Context) (*platform.Session, error) {
	f.record("Authenticate")
	if f.AuthenticateFn != nil {
		return f.AuthenticateFn(ctx)
	}
	return &platform.Session{}, nil
}

func (f *FakeClient) RefreshToken(ctx context.Context) (*platform.Session, error) {
	f.record("RefreshToken")
	if f.RefreshTokenFn != nil {
		return f.RefreshTokenFn(ctx)
	}
	return &platform.Session{}, nil
}

func (f *FakeClient) GetProfile(ctx context.Context) (*platform.Profile, error) {
	f.record("GetProfile")
	if f.GetProfileFn != nil {
		return f.GetProfileFn(ctx)
	}
	return &platform.Profile{}, nil
}

func (f *FakeClient) PostContent(ctx context.Context, post platform.ContentPost) (*platform.PostResult, error) {
	f.record("PostContent")
	if f.PostContentFn != nil {
		return f.PostContentFn(ctx, post)
	}
	return &platform.PostResult{}, nil
}

func (f *FakeClient) GetContentMetrics(ctx context.Context, contentExternalID string) (*platform.Metrics, error) {
	f.record("GetContentMetrics")
	if f.GetContentMetricsFn != nil {
		return f.GetContentMetricsFn(ctx, contentExternalID)
	}
	return &platform.Metrics{ContentExternalID: contentExternalID}, nil
}

func (f *FakeClient) GetDirectMessages(ctx context.Context, limit int, cursor string) (*platform.MessagePage, error) {
	f.record("GetDirectMessages")
	if f.GetDirectMessagesFn != nil {
		return f.GetDirectMessagesFn(ctx, limit, cursor)
	}
	return &platform.MessagePage{}, nil
}

func (f *FakeClient) SendDirectMessage(ctx context.Context, msg platform.OutgoingMessage) (*platform.SendResult, error) {
	f.record("SendDirectMessage")
	if f.SendDirectMessageFn != nil {
		return f.SendDirectMessageFn(ctx, msg)
	}
	return &platform.SendResult{}, nil
}

func (f *FakeClient) GetComments(ctx context.Context, contentExternalID string, limit int, cursor string) (*platform.CommentPage, error) {
	f.record("GetComments")
	if f.GetCommentsFn != nil {
		return f.GetCommentsFn(ctx, contentExternalID, limit, cursor)
	}
	return &platform.CommentPage{}, nil
}

func (f *FakeClient) PostComment(ctx context.Context, contentExternalID, body string) (*platform.Comment, error) {
	f.record("PostComment")
	if f.PostCommentFn != nil {
		return f.PostCommentFn(ctx, contentExternalID, body)
	}
	return &platform.Comment{ContentExternalID: contentExternalID, Body: body}, nil
}

func (f *FakeClient) GetAnalytics(ctx context.Context, r platform.DateRange) (*platform.Analytics, error) {
	f.record("GetAnalytics")
	if f.GetAnalyticsFn != nil {
		return f.GetAnalyticsFn(ctx, r)
	}
	return &platform.Analytics{Range: r}, nil
}

func (f *FakeClient) CheckAPIStatus(ctx context.Context) (*platform.APIStatus, error) {
	f.record("CheckAPIStatus")
	if f.CheckAPIStatusFn != nil {
		return f.CheckAPIStatusFn(ctx)
	}
	return &platform.APIStatus{Operational: true}, nil
}

// Ensure FakeClient implements the platform client port
var _ platform.Client = (*FakeClient)(nil)
