package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"testing"
	"time"
)

func Test_bodyHash(t *testing.T) {
	data := []byte("hello world")
	sum := sha256.Sum256(data)
	if got, want := bodyHash(data), hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("bodyHash mismatch: got %s want %s", got, want)
	}
}

func Test_nowUTC(t *testing.T) {
	u := nowUTC()
	if u.Location() != time.UTC {
		t.Fatalf("nowUTC must be UTC, got %v", u.Location())
	}
	if d := time.Since(u); d < 0 || d > 2*time.Second {
		t.Fatalf("nowUTC too far from now: %v", d)
	}
}

func Test_buildKey(t *testing.T) {
	sid := strings.Repeat("b", 32)
	k := buildKey("POST", "/api/loans", sid, testIdemKey)
	if want := "idemp:portal:post:/api/loans:" + sid + ":" + testIdemKey; k != want {
		t.Fatalf("buildKey = %q, want %q", k, want)
	}
}

func Test_validIdempotencyKey(t *testing.T) {
	valid := []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88",
		"3f9a6a1b-3d54-1fbe-8b3a-6b3e8d6b2c88",
		strings.Repeat("a", 32),
		"  " + strings.Repeat("c", 32) + " ",
	}
	for _, s := range valid {
		if !validIdempotencyKey(s) {
			t.Fatalf("should accept %q", s)
		}
	}

	invalid := []string{
		"",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c8g",
		"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88}",
	}
	for _, s := range invalid {
		if validIdempotencyKey(s) {
			t.Fatalf("should reject %q", s)
		}
	}
}

func Test_parseRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	ts, err := parseRequestAt(strconv.FormatInt(sec, 10))
	if err != nil || !ts.Equal(time.Unix(sec, 0).UTC()) {
		t.Fatalf("epoch seconds: got %v, %v", ts, err)
	}

	ms := time.Now().UTC().UnixMilli()
	ts, err = parseRequestAt(strconv.FormatInt(ms, 10))
	if err != nil || !ts.Equal(time.UnixMilli(ms).UTC()) {
		t.Fatalf("epoch millis: got %v, %v", ts, err)
	}

	want := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-09-05T10:00:00+07:00", "2025-09-05T03:00:00Z", "2025-09-05T03:00:00.000Z"} {
		ts, err := parseRequestAt(raw)
		if err != nil {
			t.Fatalf("parseRequestAt(%q): %v", raw, err)
		}
		if !ts.Equal(want) || ts.Location() != time.UTC {
			t.Fatalf("parseRequestAt(%q) = %v, want %v", raw, ts, want)
		}
	}

	for _, raw := range []string{"", "not-a-time", "2025-09-05T10:00:00", "1736123456abc"} {
		if _, err := parseRequestAt(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func Test_provisionalSet_LoadEntry(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	key := buildKey("POST", "/api/loans", strings.Repeat("b", 32), testIdemKey)
	entry := idempEntry{
		InProgress:  true,
		BodySHA256:  bodyHash([]byte(`{"a":1}`)),
		Key:         testIdemKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   nowUTC(),
	}

	ok, err := provisionalSet(context.Background(), rdb, key, entry)
	if err != nil || !ok {
		t.Fatalf("provisionalSet 1: ok=%v err=%v", ok, err)
	}
	if ttl := rdb.TTL(context.Background(), key).Val(); ttl <= 0 || ttl > provisionalLockTTL {
		t.Fatalf("provisional TTL not set correctly: %v", ttl)
	}

	ok, err = provisionalSet(context.Background(), rdb, key, entry)
	if err != nil {
		t.Fatalf("provisionalSet 2 err: %v", err)
	}
	if ok {
		t.Fatalf("provisionalSet 2 should be false, got true")
	}

	got, err := loadEntry(context.Background(), rdb, key)
	if err != nil {
		t.Fatalf("loadEntry err: %v", err)
	}
	if !got.InProgress || got.Key != entry.Key || got.BodySHA256 != entry.BodySHA256 {
		t.Fatalf("loaded entry mismatch: %+v vs %+v", got, entry)
	}
}

func Test_loadEntry_Corrupt(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	if err := mr.Set("idemp:portal:bad", "{nope"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := loadEntry(context.Background(), rdb, "idemp:portal:bad"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func Test_saveFinal_Load_TTL(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	key := buildKey("PUT", "/api/loans/:loan_id/approve", strings.Repeat("b", 32), testIdemKey)
	final := idempEntry{
		Code:        200,
		Body:        []byte(`{"ok":true}`),
		BodySHA256:  bodyHash(nil),
		Key:         testIdemKey,
		RequestAtMS: time.Now().UnixMilli(),
		CreatedAt:   nowUTC(),
	}

	ttlWant := 5 * time.Second
	if err := saveFinal(context.Background(), rdb, key, final, ttlWant); err != nil {
		t.Fatalf("saveFinal err: %v", err)
	}
	if ttl := rdb.TTL(context.Background(), key).Val(); ttl <= 0 || ttl > ttlWant {
		t.Fatalf("final TTL out of range: got %v want <= %v", ttl, ttlWant)
	}

	got, err := loadEntry(context.Background(), rdb, key)
	if err != nil {
		t.Fatalf("load after final err: %v", err)
	}
	if got.Code != 200 || string(got.Body) != `{"ok":true}` || got.InProgress {
		t.Fatalf("final entry mismatch: %+v", got)
	}
}
