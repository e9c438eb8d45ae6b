package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsAny(t *testing.T) {
	keywords := []string{"خروج", "LOGOUT"}

	require.True(t, ContainsAny(`<a href="/account/Logout">`, keywords))
	require.True(t, ContainsAny("<span>خروج از حساب</span>", keywords))
	require.False(t, ContainsAny("<h1>ورود</h1>", keywords))
	require.False(t, ContainsAny("anything", nil))
	require.False(t, ContainsAny("anything", []string{""}))
}

func TestFoldDropsZwnj(t *testing.T) {
	require.Equal(t, Fold("رزروشده"), Fold("رزرو\u200cشده"))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName(" Chelo  Kabab ", []string{"chelokabab"}))
	require.False(t, MatchName("Ghorme Sabzi", []string{"kabab"}))
}
