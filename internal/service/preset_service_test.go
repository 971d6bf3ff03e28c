package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tipsplit/internal/auth"
	"github.com/mmynk/tipsplit/internal/middleware"
	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/storage/sqlite"
)

const (
	testEmail    = "ops@example.com"
	testPassword = "let-me-in-please"
)

// setupTestServer creates a test server backed by a temp SQLite database
// seeded with the default presets.
func setupTestServer(t *testing.T) *PresetServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if _, err := store.SeedPresets(context.Background(), models.NewPresets(models.DefaultPercents)); err != nil {
		t.Fatalf("failed to seed presets: %v", err)
	}

	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	authenticator := auth.NewPasswordAuthenticator(models.Operator{Email: testEmail, PasswordHash: hash})
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	svc := NewPresetService(store, authenticator, jwtManager)
	path, handler := NewPresetServiceHandler(svc, connect.WithInterceptors(middleware.LoggingInterceptor()))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return NewPresetServiceClient(http.DefaultClient, server.URL)
}

func login(t *testing.T, client *PresetServiceClient) string {
	t.Helper()

	resp, err := client.Login(context.Background(), connect.NewRequest(&LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected a token")
	}
	return resp.Msg.Token
}

func TestListPresets(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.ListPresets(context.Background(), connect.NewRequest(&ListPresetsRequest{}))
	if err != nil {
		t.Fatalf("ListPresets failed: %v", err)
	}

	if len(resp.Msg.Presets) != len(models.DefaultPercents) {
		t.Fatalf("expected %d presets, got %d", len(models.DefaultPercents), len(resp.Msg.Presets))
	}
	for i, p := range resp.Msg.Presets {
		if p.Percent != models.DefaultPercents[i] {
			t.Errorf("preset %d percent = %v, want %v", i, p.Percent, models.DefaultPercents[i])
		}
		if p.ID == "" {
			t.Errorf("preset %d has no ID", i)
		}
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.Login(context.Background(), connect.NewRequest(&LoginRequest{
		Email:    testEmail,
		Password: "not-the-password",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated, got %v", err)
	}

	_, err = client.Login(context.Background(), connect.NewRequest(&LoginRequest{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument for empty credentials, got %v", err)
	}
}

func TestReplacePresets_RequiresToken(t *testing.T) {
	client := setupTestServer(t)

	req := connect.NewRequest(&ReplacePresetsRequest{Presets: []Preset{{Percent: 12}}})
	_, err := client.ReplacePresets(context.Background(), req)
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", err)
	}

	req = connect.NewRequest(&ReplacePresetsRequest{Presets: []Preset{{Percent: 12}}})
	req.Header().Set("Authorization", "Bearer garbage")
	_, err = client.ReplacePresets(context.Background(), req)
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected Unauthenticated with bad token, got %v", err)
	}
}

func TestReplacePresets(t *testing.T) {
	client := setupTestServer(t)
	token := login(t, client)
	ctx := context.Background()

	req := connect.NewRequest(&ReplacePresetsRequest{
		Presets: []Preset{{Percent: 18}, {Percent: 22, Label: "Generous"}},
	})
	req.Header().Set("Authorization", "Bearer "+token)

	resp, err := client.ReplacePresets(ctx, req)
	if err != nil {
		t.Fatalf("ReplacePresets failed: %v", err)
	}
	if len(resp.Msg.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(resp.Msg.Presets))
	}

	presets, err := FetchPresets(ctx, client, time.Second)
	if err != nil {
		t.Fatalf("FetchPresets failed: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
	if presets[0].Label != "18%" || presets[1].Label != "Generous" {
		t.Errorf("labels = %q, %q", presets[0].Label, presets[1].Label)
	}
}

func TestReplacePresets_Invalid(t *testing.T) {
	client := setupTestServer(t)
	token := login(t, client)

	tests := []struct {
		name    string
		presets []Preset
	}{
		{name: "empty", presets: nil},
		{name: "negative", presets: []Preset{{Percent: -1}}},
		{name: "duplicate", presets: []Preset{{Percent: 10}, {Percent: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&ReplacePresetsRequest{Presets: tt.presets})
			req.Header().Set("Authorization", "Bearer "+token)

			_, err := client.ReplacePresets(context.Background(), req)
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}

	// The original set is untouched.
	presets, err := FetchPresets(context.Background(), client, time.Second)
	if err != nil {
		t.Fatalf("FetchPresets failed: %v", err)
	}
	if len(presets) != len(models.DefaultPercents) {
		t.Errorf("expected %d presets, got %d", len(models.DefaultPercents), len(presets))
	}
}
