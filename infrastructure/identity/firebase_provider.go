package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskboard/domain/apperrors"
	"taskboard/domain/ports"
	"taskboard/pkg/logger"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider talks to the Identity Toolkit REST API. Tokens accepted by
// the backend are the ID tokens this service issues.
//
// The API key authorizes the end-user surfaces only (signUp,
// signInWithPassword, lookup by idToken). Lookup by email and sendOobCode
// with returnOobLink are admin surfaces: against the hosted service they
// need a service-account bearer (adminToken), while the emulator accepts
// them with the key alone.
type FirebaseProvider struct {
	apiKey      string
	baseURL     string
	frontendURL string
	adminToken  string
	httpClient  *http.Client
}

func NewFirebaseProvider(apiKey, baseURL, frontendURL, adminToken string) ports.IdentityProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &FirebaseProvider{
		apiKey:      apiKey,
		baseURL:     baseURL,
		frontendURL: frontendURL,
		adminToken:  adminToken,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type firebaseError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type firebaseAccount struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

func (p *FirebaseProvider) post(ctx context.Context, endpoint string, payload, result any, bearer string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s?key=%s", p.baseURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var fbErr firebaseError
		if err := json.Unmarshal(data, &fbErr); err == nil && fbErr.Error.Message != "" {
			return fbErr.Error.Message, nil
		}
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return "", err
		}
	}
	return "", nil
}

// lookupByToken resolves an ID token to its account. This is the only lookup
// form the API key authorizes.
func (p *FirebaseProvider) lookupByToken(ctx context.Context, idToken string) (*ports.Account, error) {
	var result struct {
		Users []firebaseAccount `json:"users"`
	}

	errCode, err := p.post(ctx, "accounts:lookup", map[string]string{"idToken": idToken}, &result, "")
	if err != nil {
		logger.ErrorContext(ctx, "Identity provider lookup failed", "error", err)
		return nil, err
	}
	// Any provider-side rejection is the same failure class; the caller
	// never learns which check failed.
	if errCode != "" || len(result.Users) == 0 || result.Users[0].Email == "" {
		return nil, apperrors.ErrInvalidToken
	}

	u := result.Users[0]
	return &ports.Account{
		UID:           u.LocalID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}, nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	account, err := p.lookupByToken(ctx, token)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}

func (p *FirebaseProvider) CreateAccount(ctx context.Context, email, password string) (*ports.Account, string, error) {
	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}

	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	errCode, err := p.post(ctx, "accounts:signUp", payload, &result, "")
	if err != nil {
		return nil, "", err
	}
	if errCode == "EMAIL_EXISTS" {
		return nil, "", apperrors.ErrEmailExists
	}
	if errCode != "" {
		return nil, "", fmt.Errorf("account creation rejected: %s", errCode)
	}

	account := &ports.Account{
		UID:           result.LocalID,
		Email:         result.Email,
		EmailVerified: false,
	}
	return account, result.IDToken, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*ports.Account, error) {
	var result struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
		IDToken string `json:"idToken"`
	}

	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}
	errCode, err := p.post(ctx, "accounts:signInWithPassword", payload, &result, "")
	if err != nil {
		return nil, err
	}
	if errCode != "" {
		// EMAIL_NOT_FOUND, INVALID_PASSWORD and INVALID_LOGIN_CREDENTIALS
		// all collapse into the same rejection.
		return nil, apperrors.ErrInvalidToken
	}

	// emailVerified is not in the sign-in response; read it back through
	// the freshly issued ID token, the lookup form the API key allows.
	return p.lookupByToken(ctx, result.IDToken)
}

// AccountByEmail uses the admin lookup surface; see the type comment for the
// credential it needs.
func (p *FirebaseProvider) AccountByEmail(ctx context.Context, email string) (*ports.Account, error) {
	var result struct {
		Users []firebaseAccount `json:"users"`
	}

	errCode, err := p.post(ctx, "accounts:lookup", map[string][]string{"email": {email}}, &result, p.adminToken)
	if err != nil {
		return nil, err
	}
	if errCode != "" || len(result.Users) == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	u := result.Users[0]
	return &ports.Account{
		UID:           u.LocalID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
	}, nil
}

// VerificationLink uses the admin sendOobCode surface; see the type comment
// for the credential it needs.
func (p *FirebaseProvider) VerificationLink(ctx context.Context, email string) (string, error) {
	var result struct {
		OobLink string `json:"oobLink"`
	}

	payload := map[string]any{
		"requestType":   "VERIFY_EMAIL",
		"email":         email,
		"continueUrl":   p.frontendURL + "/verify-email",
		"returnOobLink": true,
	}
	errCode, err := p.post(ctx, "accounts:sendOobCode", payload, &result, p.adminToken)
	if err != nil {
		return "", err
	}
	if errCode != "" {
		return "", fmt.Errorf("verification link rejected: %s", errCode)
	}

	return result.OobLink, nil
}
