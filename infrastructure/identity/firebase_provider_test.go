package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"taskboard/domain/apperrors"
)

const stubAdminToken = "admin-bearer"

// stubToolkit fakes the Identity Toolkit REST API. The admin surfaces
// (lookup by email, sendOobCode) reject requests without the admin bearer,
// as the hosted service does for API-key-only calls.
type stubToolkit struct {
	mu          sync.Mutex
	lookupBody  map[string]json.RawMessage // last accounts:lookup request
	validToken  string
	accountMail string
}

func (s *stubToolkit) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}

		admin := r.Header.Get("Authorization") == "Bearer "+stubAdminToken

		switch {
		case strings.HasSuffix(r.URL.Path, "accounts:signInWithPassword"):
			writeJSON(w, map[string]any{
				"localId": "uid-1",
				"email":   s.accountMail,
				"idToken": s.validToken,
			})

		case strings.HasSuffix(r.URL.Path, "accounts:lookup"):
			s.mu.Lock()
			s.lookupBody = body
			s.mu.Unlock()

			if _, byEmail := body["email"]; byEmail {
				if !admin {
					writeError(w, "INSUFFICIENT_PERMISSION")
					return
				}
				writeJSON(w, map[string]any{
					"users": []map[string]any{
						{"localId": "uid-1", "email": s.accountMail, "emailVerified": true},
					},
				})
				return
			}

			var idToken string
			_ = json.Unmarshal(body["idToken"], &idToken)
			if idToken != s.validToken {
				writeError(w, "INVALID_ID_TOKEN")
				return
			}
			writeJSON(w, map[string]any{
				"users": []map[string]any{
					{"localId": "uid-1", "email": s.accountMail, "emailVerified": true},
				},
			})

		case strings.HasSuffix(r.URL.Path, "accounts:sendOobCode"):
			if !admin {
				writeError(w, "INSUFFICIENT_PERMISSION")
				return
			}
			writeJSON(w, map[string]any{"oobLink": "https://example.com/verify?oobCode=abc"})

		default:
			http.NotFound(w, r)
		}
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message},
	})
}

func newStubProvider(t *testing.T, adminToken string) (*stubToolkit, *httptest.Server, *FirebaseProvider) {
	t.Helper()

	stub := &stubToolkit{validToken: "tok-1", accountMail: "alice@example.com"}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	provider := NewFirebaseProvider("test-key", server.URL, "http://localhost:3000", adminToken).(*FirebaseProvider)
	return stub, server, provider
}

func TestFirebaseProviderSignInLooksUpByToken(t *testing.T) {
	stub, _, provider := newStubProvider(t, "")
	ctx := context.Background()

	account, err := provider.SignIn(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if account.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", account.Email)
	}
	if !account.EmailVerified {
		t.Error("expected emailVerified to come back from the lookup")
	}

	// The follow-up lookup must use the issued ID token; lookup by email is
	// not available to the API key.
	stub.mu.Lock()
	body := stub.lookupBody
	stub.mu.Unlock()
	if _, ok := body["idToken"]; !ok {
		t.Error("expected lookup by idToken")
	}
	if _, ok := body["email"]; ok {
		t.Error("sign-in lookup used the email surface")
	}
}

func TestFirebaseProviderVerifyToken(t *testing.T) {
	_, _, provider := newStubProvider(t, "")
	ctx := context.Background()

	email, err := provider.VerifyToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", email)
	}

	if _, err := provider.VerifyToken(ctx, "bogus"); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestFirebaseProviderAdminSurfaces(t *testing.T) {
	_, _, provider := newStubProvider(t, stubAdminToken)
	ctx := context.Background()

	account, err := provider.AccountByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("AccountByEmail failed: %v", err)
	}
	if account.Email != "alice@example.com" || !account.EmailVerified {
		t.Errorf("unexpected account: %+v", account)
	}

	link, err := provider.VerificationLink(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("VerificationLink failed: %v", err)
	}
	if !strings.Contains(link, "oobCode") {
		t.Errorf("unexpected link: %s", link)
	}
}

func TestFirebaseProviderAdminSurfacesWithoutCredential(t *testing.T) {
	_, _, provider := newStubProvider(t, "")
	ctx := context.Background()

	if _, err := provider.AccountByEmail(ctx, "alice@example.com"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := provider.VerificationLink(ctx, "alice@example.com"); err == nil {
		t.Error("expected an error without the admin credential")
	}
}
