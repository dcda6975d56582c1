package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func contractPanic(t *testing.T, fn func()) *ContractError {
	t.Helper()
	var got *ContractError
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a panic")
			err, ok := r.(error)
			require.True(t, ok, "panic value %T is not an error", r)
			require.True(t, errors.As(err, &got))
		}()
		fn()
	}()
	return got
}

func TestStartMountsAndFocusesList(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	require.Equal(t, 1, h.nav.Depth())
	require.Equal(t, RouteList, h.nav.Current())
	require.Equal(t, 1, h.list().mounts)
	require.Equal(t, 1, h.list().focused)

	h.nav.Start()
	require.Equal(t, 1, h.nav.Depth())
	require.Equal(t, 1, h.list().focused)
}

func TestNavigateDetailPassesID(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	params := Params{ParamID: "42"}
	h.nav.Navigate(RouteDetail, params)

	require.Equal(t, RouteDetail, h.nav.Current())
	require.Equal(t, 2, h.nav.Depth())
	detail := h.built[RouteDetail][0]
	require.Equal(t, Params{ParamID: "42"}, detail.params)
	require.Equal(t, 1, detail.mounts)

	params[ParamID] = "changed"
	require.Equal(t, "42", detail.params[ParamID])
	require.Equal(t, 1, h.list().focused, "pushing on top must not refocus the list")
}

func TestNavigateAddTakesNoParams(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	h.nav.Navigate(RouteAdd, nil)
	require.Equal(t, RouteAdd, h.nav.Current())
	require.Nil(t, h.built[RouteAdd][0].params)

	h2 := newHarness()
	h2.nav.Start()
	h2.nav.Navigate(RouteAdd, Params{})
	require.Equal(t, RouteAdd, h2.nav.Current())
}

func TestNavigateContractViolations(t *testing.T) {
	cases := []struct {
		name   string
		route  Route
		params Params
	}{
		{"unknown route", Route("settings"), nil},
		{"detail without id", RouteDetail, nil},
		{"detail with empty id", RouteDetail, Params{ParamID: ""}},
		{"detail with extra param", RouteDetail, Params{ParamID: "1", "tab": "x"}},
		{"detail with wrong key", RouteDetail, Params{"taskId": "1"}},
		{"add with params", RouteAdd, Params{ParamID: "1"}},
		{"list re-entered", RouteList, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			h.nav.Start()
			err := contractPanic(t, func() { h.nav.Navigate(tc.route, tc.params) })
			require.Equal(t, tc.route, err.Route)
			require.NotEmpty(t, err.Reason)
			require.Equal(t, 1, h.nav.Depth())
		})
	}
}

func TestNavigateBeforeStartPanics(t *testing.T) {
	h := newHarness()
	err := contractPanic(t, func() { h.nav.Navigate(RouteAdd, nil) })
	require.Contains(t, err.Error(), "not started")
}

func TestBackRefocusesListOnce(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	h.nav.Navigate(RouteDetail, Params{ParamID: "7"})
	detail := h.built[RouteDetail][0]

	h.nav.Back()
	require.Equal(t, RouteList, h.nav.Current())
	require.Equal(t, 1, detail.unmounts)
	require.Equal(t, 2, h.list().focused)
	require.Equal(t, 0, h.list().unmounts)
}

func TestBackAtRootIsNoop(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	require.Nil(t, h.nav.Back())
	require.Equal(t, 1, h.nav.Depth())
	require.Equal(t, 1, h.list().focused)
}

func TestCloseUnmountsEverything(t *testing.T) {
	h := newHarness()
	h.nav.Start()
	h.nav.Navigate(RouteAdd, nil)
	h.nav.Close()
	require.Equal(t, 0, h.nav.Depth())
	require.Equal(t, 1, h.list().unmounts)
	require.Equal(t, 1, h.built[RouteAdd][0].unmounts)
	require.Zero(t, h.focus.Subscribers(RouteList))
}

func TestMissingFactoryPanics(t *testing.T) {
	nav := NewNavigator(map[Route]ScreenFactory{}, nil)
	err := contractPanic(t, func() { nav.Start() })
	require.Equal(t, RouteList, err.Route)
}
