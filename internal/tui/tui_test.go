package tui

import (
	"context"
	"errors"
	"frsmenu/lib/menu"
	"frsmenu/lib/scrapers/frs"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testWeek() []frs.Day {
	return []frs.Day{
		{
			DayTitle: "شنبه",
			DayDate:  "1403/01/04",
			Meals: []frs.Meal{
				{
					MealName: menu.Lunch,
					FoodMenu: []frs.Food{
						{FoodName: "قورمه سبزی", SelfMenu: []frs.SelfMenu{{SelfName: "سلف مرکزی", Price: 30000}}},
					},
				},
			},
		},
		{
			DayTitle: "یکشنبه",
			DayDate:  "1403/01/05",
			Meals: []frs.Meal{
				{
					MealName:     menu.Dinner,
					FoodMenu:     []frs.Food{{FoodName: "عدس پلو"}},
					LastReserved: []frs.Reservation{{FoodName: "عدس پلو", SelfName: "سلف خواهران"}},
				},
			},
		},
		{
			DayTitle: "جمعه",
			DayDate:  "1403/01/10",
			DayState: frs.DayStateInactive,
		},
	}
}

type fakeSource struct {
	offsets []int
	err     error
}

func (s *fakeSource) WeekMenu(ctx context.Context, base string, offset int) ([]frs.Day, error) {
	s.offsets = append(s.offsets, offset)
	if s.err != nil {
		return nil, s.err
	}
	return testWeek(), nil
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

// update applies msg and runs the returned command once, feeding its
// message back into the model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(Model)
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWeekNavigation(t *testing.T) {
	source := &fakeSource{}
	m := New(context.Background(), Options{Navigator: menu.NewNavigator(source, "1403/01/04")})

	m = run(t, m, m.Init())
	require.Len(t, m.days, 3)
	require.Contains(t, m.View(), "منوی غذا — هفته 1403/01/04 تا 1403/01/10")
	require.Contains(t, m.View(), "جمعه (تعطیل)")

	m, cmd := update(t, m, key("n"))
	require.True(t, m.loading)
	// ignored while loading
	_, ignored := update(t, m, key("n"))
	require.Nil(t, ignored)
	m = run(t, m, cmd)
	require.False(t, m.loading)
	require.Contains(t, m.View(), "(+1 هفته)")

	m, cmd = update(t, m, key("p"))
	m = run(t, m, cmd)
	m, cmd = update(t, m, key("p"))
	m = run(t, m, cmd)
	require.Contains(t, m.View(), "(-1 هفته)")

	m, cmd = update(t, m, key("c"))
	m = run(t, m, cmd)
	require.NotContains(t, m.View(), "هفته)")

	require.Equal(t, []int{0, 1, 0, -1, 0}, source.offsets)

	_, cmd = update(t, m, key("q"))
	require.True(t, isQuit(cmd))
}

func TestKeysIgnoredDuringFirstLoad(t *testing.T) {
	source := &fakeSource{}
	m := New(context.Background(), Options{Navigator: menu.NewNavigator(source, "1403/01/04")})
	require.True(t, m.loading)
	require.Contains(t, m.View(), loadingStatus)

	first := m.Init()
	m, cmd := update(t, m, key("n"))
	require.Nil(t, cmd)
	require.Equal(t, 0, m.nav.Offset())

	m = run(t, m, first)
	require.False(t, m.loading)
	require.Equal(t, []int{0}, source.offsets)
}

func TestDetailsPane(t *testing.T) {
	m := New(context.Background(), Options{Navigator: menu.NewNavigator(&fakeSource{}, "")})
	m = run(t, m, m.Init())

	m, _ = update(t, m, key("down"))
	m, _ = update(t, m, key("enter"))
	view := m.View()
	require.Contains(t, view, "جزئیات روز یکشنبه — 1403/01/05")
	require.Contains(t, view, "رزرو شده")
	require.Contains(t, view, "→ عدس پلو (سلف خواهران)")

	m, _ = update(t, m, key("esc"))
	require.NotContains(t, m.View(), "جزئیات روز")
}

func TestLoadErrorShowsStatus(t *testing.T) {
	source := &fakeSource{err: errors.New("timeout")}
	m := New(context.Background(), Options{Navigator: menu.NewNavigator(source, "")})

	m = run(t, m, m.Init())
	require.True(t, m.failed)
	require.Contains(t, m.View(), "خطا در دریافت داده: timeout")

	source.err = nil
	m, cmd := update(t, m, key("c"))
	m = run(t, m, cmd)
	require.False(t, m.failed)
	require.NotContains(t, m.View(), "timeout")
}

func TestLoginScreen(t *testing.T) {
	var gotUser, gotPass string
	login := func(ctx context.Context, username, password string) error {
		gotUser, gotPass = username, password
		return nil
	}

	source := &fakeSource{}
	m := New(context.Background(), Options{
		Navigator: menu.NewNavigator(source, ""),
		Login:     login,
	})
	require.Nil(t, m.Init())
	require.Contains(t, m.View(), "نام کاربری")

	// nothing to submit yet
	m, cmd := update(t, m, key("enter"))
	require.Nil(t, cmd)

	m = typeText(t, m, "40212345")
	m, _ = update(t, m, key("tab"))
	m = typeText(t, m, "hunter2")
	require.NotContains(t, m.View(), "hunter2")

	m, cmd = update(t, m, key("enter"))
	require.True(t, m.login.pending)
	m, cmd = update(t, m, cmd())
	require.Equal(t, "40212345", gotUser)
	require.Equal(t, "hunter2", gotPass)
	require.Equal(t, screenWeek, m.screen)

	m = run(t, m, cmd)
	require.Len(t, m.days, 3)
	require.Equal(t, []int{0}, source.offsets)
}

func TestLoginPrefilledUsername(t *testing.T) {
	m := New(context.Background(), Options{
		Navigator: menu.NewNavigator(&fakeSource{}, ""),
		Login:     func(context.Context, string, string) error { return nil },
		Username:  "40212345",
	})
	require.Equal(t, 1, m.login.focus)

	m = typeText(t, m, "pw")
	username, password := m.login.credentials()
	require.Equal(t, "40212345", username)
	require.Equal(t, "pw", password)
}

func TestLoginFailureQuits(t *testing.T) {
	m := New(context.Background(), Options{
		Navigator: menu.NewNavigator(&fakeSource{}, ""),
		Login: func(context.Context, string, string) error {
			return frs.ErrLoginFailed
		},
		Username: "40212345",
	})
	m = typeText(t, m, "wrong")

	m, cmd := update(t, m, key("enter"))
	m, cmd = update(t, m, cmd())
	require.True(t, isQuit(cmd))
	require.Equal(t, LoginFailedMessage, m.ExitMessage())
}

func TestLoginNetworkErrorQuits(t *testing.T) {
	m := New(context.Background(), Options{
		Navigator: menu.NewNavigator(&fakeSource{}, ""),
		Login: func(context.Context, string, string) error {
			return errors.New("dial tcp: connection refused")
		},
		Username: "u",
	})
	m = typeText(t, m, "p")

	m, cmd := update(t, m, key("enter"))
	m, cmd = update(t, m, cmd())
	require.True(t, isQuit(cmd))
	require.True(t, strings.HasPrefix(m.ExitMessage(), LoginFailedMessage))
	require.Contains(t, m.ExitMessage(), "connection refused")
}
