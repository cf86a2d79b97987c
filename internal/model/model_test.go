package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in       string
		expected Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"UserRole.ADMIN", RoleAdmin},
		{" admin ", RoleAdmin},
		{"user", RoleUser},
		{"UserRole.USER", RoleUser},
		{"", RoleUser},
		{"superuser", RoleUser},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseRole(tc.in))
		})
	}
}

func TestUser_UnmarshalNormalizesRole(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","email":"a@b.com","role":"UserRole.ADMIN","is_active":true}`), &u))
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.IsActive)
}

func TestThread_Titles(t *testing.T) {
	assert.Equal(t, "Hi", Thread{ID: "t1", Title: "Hi"}.DisplayTitle())
	assert.Equal(t, DefaultThreadTitle, Thread{ID: "t1"}.DisplayTitle())
	assert.Equal(t, "Chat ID: 0123abcd...", Thread{ID: "0123abcdef"}.HeaderTitle())
	assert.Equal(t, "Chat ID: t1...", Thread{ID: "t1"}.HeaderTitle())
}

func TestSession(t *testing.T) {
	var s Session
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())

	s = Session{Token: "tok", User: &User{Role: RoleAdmin}}
	assert.True(t, s.Authenticated())
	assert.True(t, s.IsAdmin())
}

func TestMessage_Optimistic(t *testing.T) {
	assert.True(t, Message{ClientID: "c1"}.Optimistic())
	assert.False(t, Message{ID: "m1", ClientID: "c1"}.Optimistic())
	assert.False(t, Message{}.Optimistic())
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected time.Time
	}{
		{"RFC 3339 with offset", `"2024-05-01T14:00:00+02:00"`, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"RFC 3339 UTC", `"2024-05-01T12:00:00.5Z"`, time.Date(2024, 5, 1, 12, 0, 0, 500000000, time.UTC)},
		{"Naive with microseconds", `"2024-05-01T12:00:00.123000"`, time.Date(2024, 5, 1, 12, 0, 0, 123000000, time.UTC)},
		{"Naive without fraction", `"2024-05-01T12:00:00"`, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		{"Naive with space separator", `"2024-05-01 12:00:00.25"`, time.Date(2024, 5, 1, 12, 0, 0, 250000000, time.UTC)},
		{"Null", `null`, time.Time{}},
		{"Empty", `""`, time.Time{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.in), &ts))
			assert.True(t, tc.expected.Equal(ts.Time), "got %s", ts.Time)
		})
	}

	t.Run("Failure - Not a date", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
		assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
	})

	t.Run("Round trip keeps the instant", func(t *testing.T) {
		in := Thread{ID: "t1", CreatedAt: NewTimestamp(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))}
		data, err := json.Marshal(in)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"created_at":"2024-05-01T12:00:00Z"`)

		var out Thread
		require.NoError(t, json.Unmarshal(data, &out))
		assert.True(t, in.CreatedAt.Equal(out.CreatedAt.Time))
	})
}
