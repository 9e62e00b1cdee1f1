package service

import (
	"errors"
	"testing"
)

func TestDecodeChatRequest_Valid(t *testing.T) {
	req, err := DecodeChatRequest([]byte(`{"userId":"u1","messages":[{"role":"user","content":"hi"},{"role":"system","content":"be nice"}]}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.UserID != "u1" {
		t.Fatalf("expected userId u1, got %q", req.UserID)
	}
	if len(req.Messages) != 2 || req.Messages[1].Role != "system" || req.Messages[1].Content != "be nice" {
		t.Fatalf("expected messages decoded verbatim, got %+v", req.Messages)
	}
}

func TestDecodeChatRequest_EmptyMessagesArray(t *testing.T) {
	req, err := DecodeChatRequest([]byte(`{"userId":"u1","messages":[]}`))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Messages == nil || len(req.Messages) != 0 {
		t.Fatalf("expected empty non-nil messages, got %#v", req.Messages)
	}
}

func TestDecodeChatRequest_NumericUserID(t *testing.T) {
	cases := map[string]string{
		`{"userId":123,"messages":[]}`:  "123",
		`{"userId":-7,"messages":[]}`:   "-7",
		`{"userId":1.50,"messages":[]}`: "1.50",
	}
	for body, want := range cases {
		req, err := DecodeChatRequest([]byte(body))
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", body, err)
		}
		if req.UserID != want {
			t.Fatalf("%s: expected userId %q, got %q", body, want, req.UserID)
		}
	}
}

func TestDecodeChatRequest_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"empty body":       ``,
		"whitespace body":  "  \n ",
		"empty object":     `{}`,
		"null body":        `null`,
		"array body":       `[1,2]`,
		"string body":      `"hello"`,
		"missing userId":   `{"messages":[]}`,
		"empty userId":     `{"userId":"","messages":[]}`,
		"null userId":      `{"userId":null,"messages":[]}`,
		"zero userId":      `{"userId":0,"messages":[]}`,
		"float zero":       `{"userId":0.0,"messages":[]}`,
		"boolean userId":   `{"userId":false,"messages":[]}`,
		"missing messages": `{"userId":"u1"}`,
		"null messages":    `{"userId":"u1","messages":null}`,
		"object messages":  `{"userId":"u1","messages":{"role":"user"}}`,
		"string messages":  `{"userId":"u1","messages":"hi"}`,
		"number messages":  `{"userId":"u1","messages":3}`,
	}
	for name, body := range cases {
		if _, err := DecodeChatRequest([]byte(body)); !errors.Is(err, ErrInvalidChatRequest) {
			t.Fatalf("%s: expected ErrInvalidChatRequest, got %v", name, err)
		}
	}
}

func TestDecodeChatRequest_MalformedInput(t *testing.T) {
	cases := map[string]string{
		"syntax error":     `{"userId":"u1",`,
		"message element":  `{"userId":"u1","messages":[42]}`,
		"non-string field": `{"userId":"u1","messages":[{"role":"user","content":7}]}`,
		"null element":     `{"userId":"u1","messages":[null]}`,
		"null after valid": `{"userId":"u1","messages":[{"role":"user","content":"hi"}, null ]}`,
	}
	for name, body := range cases {
		_, err := DecodeChatRequest([]byte(body))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if errors.Is(err, ErrInvalidChatRequest) {
			t.Fatalf("%s: expected non-validation error, got %v", name, err)
		}
	}
}
