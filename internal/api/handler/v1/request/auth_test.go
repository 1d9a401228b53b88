package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/request"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := request.SignupRequest{
		Email:           "buyer@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Test Buyer",
		Role:            "buyer",
	}

	tests := []struct {
		name    string
		mutate  func(r *request.SignupRequest)
		wantErr bool
	}{
		{"valid", func(r *request.SignupRequest) {}, false},
		{"missing email", func(r *request.SignupRequest) { r.Email = "" }, true},
		{"bad email", func(r *request.SignupRequest) { r.Email = "not-an-email" }, true},
		{"password too short", func(r *request.SignupRequest) { r.Password = "pass1"; r.ConfirmPassword = "pass1" }, true},
		{"password without digit", func(r *request.SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }, true},
		{"password without letter", func(r *request.SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }, true},
		{"confirm mismatch", func(r *request.SignupRequest) { r.ConfirmPassword = "password2" }, true},
		{"unknown role", func(r *request.SignupRequest) { r.Role = "intern" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := request.LoginRequest{Email: "buyer@example.com", Password: "password1"}
	assert.NoError(t, req.Validate())

	req.Email = ""
	assert.Error(t, req.Validate())
}
