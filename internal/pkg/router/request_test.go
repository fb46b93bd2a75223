package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequest_DecodeBody(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"email":"ada@example.com"}`},
		{name: "unknown field", body: `{"email":"a","extra":1}`, wantErr: true},
		{name: "trailing document", body: `{"email":"a"}{}`, wantErr: true},
		{name: "malformed", body: `{`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))}

			var dst payload
			err := req.DecodeBody(&dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeBody() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequest_Queries(t *testing.T) {
	req := &Request{Request: httptest.NewRequest(http.MethodGet, "/?start_date=2026-01-31&min_amount=+10.5&bad=x", nil)}

	d, err := req.GetQueryDate("start_date", "2006-01-02")
	if err != nil || d.Day() != 31 {
		t.Fatalf("GetQueryDate() = %v, %v", d, err)
	}

	if _, err := req.GetQueryDate("bad", "2006-01-02"); err == nil {
		t.Fatal("expected error for malformed date")
	}

	amt, err := req.GetQueryDecimal("min_amount")
	if err != nil || amt == nil || amt.String() != "10.5" {
		t.Fatalf("GetQueryDecimal() = %v, %v", amt, err)
	}

	if amt, err := req.GetQueryDecimal("missing"); err != nil || amt != nil {
		t.Fatalf("GetQueryDecimal(missing) = %v, %v", amt, err)
	}
	if _, err := req.GetQueryDecimal("bad"); err == nil {
		t.Fatal("expected error for malformed decimal")
	}
}

func TestRequest_DecodeOptionalBody(t *testing.T) {
	req := &Request{Request: httptest.NewRequest(http.MethodPost, "/", nil)}

	var dst map[string]any
	if err := req.DecodeOptionalBody(&dst); err != nil {
		t.Fatalf("DecodeOptionalBody() error = %v", err)
	}
}
