package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/protorns/tg-miniapp-server/util/common"
)

const testBotToken = "123456:TEST-TOKEN"

// signInitData plays Telegram's side: it signs the given fields the same way
// the Bot API does, so Verify must accept the result.
func signInitData(token string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	secret := sha256.Sum256([]byte(token))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	hash := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	for k, v := range fields {
		q.Set(k, v)
	}
	q.Set("hash", hash)
	return q.Encode()
}

func validFields(authDate time.Time) map[string]string {
	return map[string]string{
		"user":      `{"id":99,"first_name":"Alice","last_name":"Anderson","username":"alice"}`,
		"auth_date": strconv.FormatInt(authDate.Unix(), 10),
		"query_id":  "AAErCkk1AgAAACsKSTXUn0EK",
	}
}

func TestVerify_ValidInitData(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)
	initData := signInitData(testBotToken, validFields(time.Now()))

	u, err := s.Verify(initData)
	if err != nil {
		t.Fatalf("Verify failed on valid init data: %v", err)
	}
	if u.Id != 99 || u.Username != "alice" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.FullName() != "Alice Anderson" {
		t.Errorf("FullName() = %q", u.FullName())
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	fields := validFields(time.Now())
	initData := signInitData(testBotToken, fields)
	tampered := strings.Replace(initData, "alice", "mallory", 1)

	_, err := s.Verify(tampered)
	if !errors.Is(err, common.ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerify_WrongToken(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)
	initData := signInitData("999999:OTHER-TOKEN", validFields(time.Now()))

	_, err := s.Verify(initData)
	if !errors.Is(err, common.ErrBadSignature) {
		t.Errorf("expected ErrBadSignature, got %v", err)
	}
}

func TestVerify_MissingHash(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	_, err := s.Verify("user=%7B%22id%22%3A1%7D&auth_date=123")
	if !errors.Is(err, common.ErrMissingHash) {
		t.Errorf("expected ErrMissingHash, got %v", err)
	}
}

func TestVerify_MissingUser(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	fields := map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
	}
	_, err := s.Verify(signInitData(testBotToken, fields))
	if !errors.Is(err, common.ErrMissingUser) {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}

func TestVerify_BadUserJSON(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	fields := map[string]string{
		"user":      "{not json",
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
	}
	_, err := s.Verify(signInitData(testBotToken, fields))
	if !errors.Is(err, common.ErrBadUserJSON) {
		t.Errorf("expected ErrBadUserJSON, got %v", err)
	}
}

func TestVerify_EmptyBotToken(t *testing.T) {
	s := NewTelegramAuthService("", 0)

	_, err := s.Verify(signInitData(testBotToken, validFields(time.Now())))
	if !errors.Is(err, common.ErrBotTokenMissing) {
		t.Errorf("expected ErrBotTokenMissing, got %v", err)
	}
}

func TestVerify_MaxAge(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, time.Hour)

	// Fresh payload passes.
	fresh := signInitData(testBotToken, validFields(time.Now()))
	if _, err := s.Verify(fresh); err != nil {
		t.Errorf("fresh init data rejected: %v", err)
	}

	// Stale payload fails.
	stale := signInitData(testBotToken, validFields(time.Now().Add(-2*time.Hour)))
	_, err := s.Verify(stale)
	if !errors.Is(err, common.ErrInitDataExpired) {
		t.Errorf("expected ErrInitDataExpired, got %v", err)
	}
}

func TestVerify_MaxAgeDisabledIgnoresAuthDate(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	stale := signInitData(testBotToken, validFields(time.Now().Add(-240*time.Hour)))
	if _, err := s.Verify(stale); err != nil {
		t.Errorf("auth_date must be ignored when max age is disabled: %v", err)
	}
}

func TestVerify_KeepsBlankValues(t *testing.T) {
	s := NewTelegramAuthService(testBotToken, 0)

	fields := validFields(time.Now())
	fields["start_param"] = ""
	initData := signInitData(testBotToken, fields)

	if _, err := s.Verify(initData); err != nil {
		t.Errorf("blank values must participate in the check string: %v", err)
	}
}
