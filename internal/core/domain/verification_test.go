package domain

import (
	"errors"
	"testing"
)

func validRequest() *SubmissionRequest {
	return &SubmissionRequest{
		Email:      "alice@example.com",
		LastName:   "Smith",
		NationalID: "123456",
		Image1:     []byte{0xff, 0xd8},
		Image2:     []byte{0xff, 0xd8},
		ClientIP:   "203.0.113.7",
	}
}

func TestSubmissionRequest_Validate_OK(t *testing.T) {
	if err := validRequest().Validate(); err != nil {
		t.Fatalf("Valid request rejected: %v", err)
	}
}

func TestSubmissionRequest_Validate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *SubmissionRequest)
	}{
		{"email without at sign", func(r *SubmissionRequest) { r.Email = "alice.example.com" }},
		{"email with empty local part", func(r *SubmissionRequest) { r.Email = "@example.com" }},
		{"missing last name", func(r *SubmissionRequest) { r.LastName = "" }},
		{"missing national id", func(r *SubmissionRequest) { r.NationalID = "" }},
		{"empty first image", func(r *SubmissionRequest) { r.Image1 = nil }},
		{"empty second image", func(r *SubmissionRequest) { r.Image2 = []byte{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			err := req.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Error not wrapped in ErrInvalidInput: %v", err)
			}
		})
	}
}

func TestSubmissionRequest_Derive(t *testing.T) {
	req := validRequest()

	identity := req.Derive(func(rawID string) string { return "digest-of-" + rawID })

	if identity.Username != "aliceSmith" {
		t.Errorf("Username: got %s, want aliceSmith", identity.Username)
	}
	if identity.Image1Key != "aliceSmith_image1.jpg" {
		t.Errorf("Image1Key: got %s, want aliceSmith_image1.jpg", identity.Image1Key)
	}
	if identity.Image2Key != "aliceSmith_image2.jpg" {
		t.Errorf("Image2Key: got %s, want aliceSmith_image2.jpg", identity.Image2Key)
	}
	if identity.HashedID != "digest-of-123456" {
		t.Errorf("HashedID: got %s, want digest-of-123456", identity.HashedID)
	}
}
