package auth

import (
	"testing"

	"github.com/surajbi2/secureIn-backend/internal/config"
	"github.com/surajbi2/secureIn-backend/internal/models"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-unit-tests"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "securein-test"
	return NewJWTManager(cfg)
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "guard@example.com",
		Role:  "staff",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testJWTManager()

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "guard@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != "staff" {
		t.Errorf("Role = %q, want staff", claims.Role)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	m := testJWTManager()

	token, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ValidateToken(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}

	other := &config.Config{}
	other.JWT.Secret = "a-different-secret"
	other.JWT.ExpirationHours = 1
	other.JWT.Issuer = "securein-test"
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	m := testJWTManager()

	temp, err := m.GenerateTempToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.ValidateTempToken(temp)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}

	// A full session token must not pass temp validation: the type claim is
	// missing.
	session, err := m.GenerateToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.ValidateTempToken(session); err == nil {
		t.Error("session token accepted as 2FA temp token")
	}
}
