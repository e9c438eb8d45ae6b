package menu

import (
	"context"
	"errors"
	"frsmenu/lib/scrapers/frs"
	"testing"

	"github.com/stretchr/testify/require"
)

type weekRequest struct {
	base   string
	offset int
}

type fakeSource struct {
	requests []weekRequest
	fail     bool
}

func (s *fakeSource) WeekMenu(ctx context.Context, base string, offset int) ([]frs.Day, error) {
	s.requests = append(s.requests, weekRequest{base: base, offset: offset})
	if s.fail {
		return nil, errors.New("unreachable")
	}
	return testWeek(), nil
}

func TestNavigator(t *testing.T) {
	source := &fakeSource{}
	nav := NewNavigator(source, "1403/01/04")
	ctx := context.Background()

	require.Equal(t, "منوی غذا", nav.Title())

	_, err := nav.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "منوی غذا — هفته 1403/01/04 تا 1403/01/10", nav.Title())

	nav.Next()
	nav.Next()
	_, err = nav.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, nav.Offset())
	require.Contains(t, nav.Title(), "(+2 هفته)")

	nav.Prev()
	nav.Prev()
	nav.Prev()
	_, err = nav.Load(ctx)
	require.NoError(t, err)
	require.Contains(t, nav.Title(), "(-1 هفته)")

	nav.Current()
	_, err = nav.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, []weekRequest{
		{"1403/01/04", 0},
		{"1403/01/04", 2},
		{"1403/01/04", -1},
		{"1403/01/04", 0},
	}, source.requests)
}

func TestNavigatorKeepsWeekOnError(t *testing.T) {
	source := &fakeSource{}
	nav := NewNavigator(source, "1403/01/04")

	_, err := nav.Load(context.Background())
	require.NoError(t, err)

	source.fail = true
	nav.Next()
	_, err = nav.Load(context.Background())
	require.Error(t, err)
	require.Len(t, nav.Days(), 2)
	require.Equal(t, 1, nav.Offset())
	// still titled as the week that is shown
	require.Equal(t, "منوی غذا — هفته 1403/01/04 تا 1403/01/10", nav.Title())
}
