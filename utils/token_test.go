package utils_test

import (
	"testing"

	"bitbucket.org/lcconsulting/consulting_backend/utils"
)

func TestJwtGenerateValidateRoundtrip(t *testing.T) {
	token, err := utils.JwtGenerate("auth0|tester", []string{"read:reports", "create:reports"})
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	validated, err := utils.JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if !validated.Valid {
		t.Fatal("token should be valid")
	}

	claims, ok := validated.Claims.(*utils.JwtCustomClaim)
	if !ok {
		t.Fatal("claims have unexpected type")
	}
	if claims.Subject != "auth0|tester" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[0] != "read:reports" {
		t.Errorf("permissions = %v", claims.Permissions)
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := utils.JwtValidate("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
