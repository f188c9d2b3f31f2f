// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
	if SessionIDCtxKey.String() != "sessionID" {
		t.Errorf("expected 'sessionID', got '%s'", SessionIDCtxKey.String())
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	userID, ok := GetUserIDFromContext(WithUserID(context.Background(), "u-42"))
	if !ok || userID != "u-42" {
		t.Fatalf("expected u-42, got %q (ok=%v)", userID, ok)
	}

	if _, ok = GetUserIDFromContext(context.Background()); ok {
		t.Error("expected ok=false for missing value")
	}
	if _, ok = GetUserIDFromContext(WithUserID(context.Background(), "")); ok {
		t.Error("expected ok=false for empty value")
	}
	if _, ok = GetUserIDFromContext(context.WithValue(context.Background(), UserIDCtxKey, int64(1))); ok {
		t.Error("expected ok=false for wrong type")
	}
}

func TestGetSessionIDFromContext(t *testing.T) {
	sid, ok := GetSessionIDFromContext(WithSessionID(context.Background(), "s-1"))
	if !ok || sid != "s-1" {
		t.Fatalf("expected s-1, got %q (ok=%v)", sid, ok)
	}
}
