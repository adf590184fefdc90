package ws

import (
	"net/url"
	"testing"

	"github.com/gorilla/websocket"

	"live-interpreter-service/internal/service/interpret"
)

func TestParseParams_Full(t *testing.T) {
	q := url.Values{}
	q.Set("source_language", "en")
	q.Set("target_language", "es")
	q.Set("token", "tok-123")
	q.Set("session_id", "42")

	params, err := parseParams(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.SourceLanguage != "en" || params.TargetLanguage != "es" || params.Token != "tok-123" {
		t.Errorf("unexpected params: %+v", params)
	}
	if params.SessionID == nil || *params.SessionID != 42 {
		t.Errorf("expected session id 42, got %v", params.SessionID)
	}
}

func TestParseParams_NoSessionID(t *testing.T) {
	q := url.Values{}
	q.Set("source_language", "en")
	q.Set("target_language", "es")
	q.Set("token", "tok-123")

	params, err := parseParams(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.SessionID != nil {
		t.Errorf("expected nil session id, got %v", params.SessionID)
	}
}

func TestParseParams_MalformedSessionID(t *testing.T) {
	q := url.Values{}
	q.Set("source_language", "en")
	q.Set("target_language", "es")
	q.Set("token", "tok-123")
	q.Set("session_id", "not-a-number")

	if _, err := parseParams(q); err == nil {
		t.Fatal("expected error for malformed session_id")
	}
}

func TestParseParams_MissingValuesLeftEmpty(t *testing.T) {
	// Missing token and languages are the controller's call, not a
	// parse error.
	params, err := parseParams(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Token != "" || params.SourceLanguage != "" || params.TargetLanguage != "" {
		t.Errorf("expected empty params, got %+v", params)
	}
}

func TestCloseCodes_Mapping(t *testing.T) {
	cases := map[interpret.CloseCode]int{
		interpret.CloseNormal:        websocket.CloseNormalClosure,
		interpret.CloseBadRequest:    4400,
		interpret.CloseUnauthorized:  4401,
		interpret.CloseForbidden:     4403,
		interpret.CloseInternalError: websocket.CloseInternalServerErr,
	}
	for code, want := range cases {
		if got := closeCodes[code]; got != want {
			t.Errorf("closeCodes[%s] = %d, want %d", code, got, want)
		}
	}
}
