// Package service implements the preset service: the Connect RPC surface that
// hands the deployment's tip presets to terminal clients.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage"
)

// PresetService serves and updates the preset configuration.
type PresetService struct {
	store         storage.PresetStore
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewPresetService creates a new PresetService with the given storage backend.
func NewPresetService(store storage.PresetStore, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *PresetService {
	return &PresetService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// ListPresets returns the current preset set in display order.
func (s *PresetService) ListPresets(ctx context.Context, req *connect.Request[ListPresetsRequest]) (*connect.Response[ListPresetsResponse], error) {
	presets, err := s.store.ListPresets(ctx)
	if err != nil {
		slog.Error("ListPresets failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&ListPresetsResponse{Presets: toWire(presets)}), nil
}

// ReplacePresets validates and stores a new preset set.
func (s *PresetService) ReplacePresets(ctx context.Context, req *connect.Request[ReplacePresetsRequest]) (*connect.Response[ReplacePresetsResponse], error) {
	operator := middleware.GetOperator(ctx)
	if operator == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	presets := fromWire(req.Msg.Presets)
	if err := models.ValidatePresets(presets); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.ReplacePresets(ctx, presets); err != nil {
		slog.Error("ReplacePresets failed", "operator", operator, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Presets replaced",
		"operator", operator,
		"percents", models.Percents(presets),
	)
	return connect.NewResponse(&ReplacePresetsResponse{Presets: toWire(presets)}), nil
}

// Login exchanges operator credentials for a token.
func (s *PresetService) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	op, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Msg.Email, "error", err)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, expiresAt, err := s.jwtManager.Generate(op)
	if err != nil {
		slog.Error("Failed to generate token", "email", op.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Operator logged in", "email", op.Email)
	return connect.NewResponse(&LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}

// FetchPresets loads the preset set from a preset server and validates it.
func FetchPresets(ctx context.Context, client *PresetServiceClient, timeout time.Duration) ([]models.Preset, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := client.ListPresets(ctx, connect.NewRequest(&ListPresetsRequest{}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch presets: %w", err)
	}

	presets := fromWire(resp.Msg.Presets)
	if err := models.ValidatePresets(presets); err != nil {
		return nil, fmt.Errorf("preset server returned unusable presets: %w", err)
	}
	return presets, nil
}
