package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchSuccessKeepsSourceOrder(t *testing.T) {
	t.Parallel()

	src := SourceFunc(func(context.Context) ([]Task, error) {
		return []Task{{ID: "b", Title: "second"}, {ID: "a", Title: "first"}}, nil
	})
	res := Fetch(context.Background(), src)
	require.True(t, res.OK())
	require.Equal(t, []string{"b", "a"}, []string{res.Tasks[0].ID, res.Tasks[1].ID})
}

func TestFetchNilSliceBecomesEmpty(t *testing.T) {
	t.Parallel()

	res := Fetch(context.Background(), SourceFunc(func(context.Context) ([]Task, error) {
		return nil, nil
	}))
	require.True(t, res.OK())
	require.NotNil(t, res.Tasks)
	require.Empty(t, res.Tasks)
}

func TestFetchFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	res := Fetch(context.Background(), SourceFunc(func(context.Context) ([]Task, error) {
		return []Task{{ID: "ignored"}}, boom
	}))
	require.False(t, res.OK())
	require.ErrorIs(t, res.Err, boom)
	require.Nil(t, res.Tasks)
}

func TestFetchRecoversPanics(t *testing.T) {
	t.Parallel()

	res := Fetch(context.Background(), SourceFunc(func(context.Context) ([]Task, error) {
		panic("decoder exploded")
	}))
	require.False(t, res.OK())
	require.Contains(t, res.Err.Error(), "decoder exploded")
}
