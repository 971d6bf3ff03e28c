package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/middleware"
)

// PresetServiceName is the fully-qualified name of the preset service.
const PresetServiceName = "tipsplit.v1.PresetService"

// Procedure paths of the preset service.
const (
	PresetServiceListPresetsProcedure    = "/" + PresetServiceName + "/ListPresets"
	PresetServiceReplacePresetsProcedure = "/" + PresetServiceName + "/ReplacePresets"
	PresetServiceLoginProcedure          = "/" + PresetServiceName + "/Login"
)

// NewPresetServiceHandler builds an HTTP handler serving every procedure of
// the preset service. It returns the path on which to mount the handler.
// ReplacePresets additionally requires a valid operator token.
func NewPresetServiceHandler(svc *PresetService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	list := connect.NewUnaryHandler(PresetServiceListPresetsProcedure, svc.ListPresets, opts...)
	login := connect.NewUnaryHandler(PresetServiceLoginProcedure, svc.Login, opts...)
	replace := connect.NewUnaryHandler(
		PresetServiceReplacePresetsProcedure,
		svc.ReplacePresets,
		append(opts, connect.WithInterceptors(middleware.RequireAuth(svc.jwtManager)))...,
	)

	return "/" + PresetServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PresetServiceListPresetsProcedure:
			list.ServeHTTP(w, r)
		case PresetServiceReplacePresetsProcedure:
			replace.ServeHTTP(w, r)
		case PresetServiceLoginProcedure:
			login.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PresetServiceClient is a client for the preset service.
type PresetServiceClient struct {
	list    *connect.Client[ListPresetsRequest, ListPresetsResponse]
	replace *connect.Client[ReplacePresetsRequest, ReplacePresetsResponse]
	login   *connect.Client[LoginRequest, LoginResponse]
}

// NewPresetServiceClient constructs a client for the preset service at baseURL
// (e.g. "http://localhost:8080").
func NewPresetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PresetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &PresetServiceClient{
		list:    connect.NewClient[ListPresetsRequest, ListPresetsResponse](httpClient, baseURL+PresetServiceListPresetsProcedure, opts...),
		replace: connect.NewClient[ReplacePresetsRequest, ReplacePresetsResponse](httpClient, baseURL+PresetServiceReplacePresetsProcedure, opts...),
		login:   connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+PresetServiceLoginProcedure, opts...),
	}
}

// ListPresets calls tipsplit.v1.PresetService.ListPresets.
func (c *PresetServiceClient) ListPresets(ctx context.Context, req *connect.Request[ListPresetsRequest]) (*connect.Response[ListPresetsResponse], error) {
	return c.list.CallUnary(ctx, req)
}

// ReplacePresets calls tipsplit.v1.PresetService.ReplacePresets.
func (c *PresetServiceClient) ReplacePresets(ctx context.Context, req *connect.Request[ReplacePresetsRequest]) (*connect.Response[ReplacePresetsResponse], error) {
	return c.replace.CallUnary(ctx, req)
}

// Login calls tipsplit.v1.PresetService.Login.
func (c *PresetServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
