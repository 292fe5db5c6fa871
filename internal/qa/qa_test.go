package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCheck returns a Check that records how often it ran.
func countingCheck(name, label string, calls *int, err error) Check {
	return Check{
		Name:  name,
		Label: label,
		Run: func(ctx context.Context) error {
			*calls++
			return err
		},
	}
}

func TestRunnerAllPass(t *testing.T) {
	var c1, c2, c3 int
	var buf strings.Builder
	r := NewRunner(&buf,
		countingCheck("unit-tests", "Running unit tests...", &c1, nil),
		countingCheck("type-check", "Type-checking...", &c2, nil),
		countingCheck("style", "Running style checks...", &c3, nil),
	)

	res := r.Run(context.Background())

	assert.True(t, res.Passed)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 1, c1)
	assert.Equal(t, 1, c2)
	assert.Equal(t, 1, c3)
	require.Equal(t,
		"Running unit tests...\n"+
			"Type-checking...\n"+
			"Running style checks...\n"+
			"SUCCESS\n",
		buf.String())
}

func TestRunnerFirstCheckFails(t *testing.T) {
	boom := errors.New("boom")
	var c1, c2, c3 int
	var buf strings.Builder
	r := NewRunner(&buf,
		countingCheck("unit-tests", "Running unit tests...", &c1, boom),
		countingCheck("type-check", "Type-checking...", &c2, nil),
		countingCheck("style", "Running style checks...", &c3, nil),
	)

	res := r.Run(context.Background())

	assert.False(t, res.Passed)
	assert.Equal(t, "unit-tests", res.Failed)
	assert.ErrorIs(t, res.Err, boom)
	assert.Equal(t, 1, c1)
	assert.Equal(t, 0, c2, "later checks must be skipped")
	assert.Equal(t, 0, c3, "later checks must be skipped")
	require.Equal(t,
		"Running unit tests...\n"+
			"FAILURE\n",
		buf.String())
}

func TestRunnerSecondCheckFails(t *testing.T) {
	var c1, c2, c3 int
	var buf strings.Builder
	r := NewRunner(&buf,
		countingCheck("unit-tests", "Running unit tests...", &c1, nil),
		countingCheck("type-check", "Type-checking...", &c2, errors.New("bad types")),
		countingCheck("style", "Running style checks...", &c3, nil),
	)

	res := r.Run(context.Background())

	assert.False(t, res.Passed)
	assert.Equal(t, "type-check", res.Failed)
	assert.Equal(t, 1, c1)
	assert.Equal(t, 1, c2)
	assert.Equal(t, 0, c3, "style check must be skipped")
	require.Equal(t,
		"Running unit tests...\n"+
			"Type-checking...\n"+
			"FAILURE\n",
		buf.String())
}

func TestRunnerNoOpFinalCheck(t *testing.T) {
	// The last check succeeding immediately still yields all labels in order.
	var buf strings.Builder
	noop := func(ctx context.Context) error { return nil }
	r := NewRunner(&buf,
		Check{Name: "unit-tests", Label: "Running unit tests...", Run: noop},
		Check{Name: "type-check", Label: "Type-checking...", Run: noop},
		Check{Name: "style", Label: "Running style checks...", Run: noop},
	)

	res := r.Run(context.Background())

	assert.True(t, res.Passed)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"Running unit tests...",
		"Type-checking...",
		"Running style checks...",
		"SUCCESS",
	}, lines)
}

func TestRunnerNoChecks(t *testing.T) {
	var buf strings.Builder
	res := NewRunner(&buf).Run(context.Background())
	assert.True(t, res.Passed)
	assert.Equal(t, "SUCCESS\n", buf.String())
}

func TestDefaultChecksOrder(t *testing.T) {
	checks := DefaultChecks(".", nil, nil)
	require.Len(t, checks, 3)
	assert.Equal(t, "unit-tests", checks[0].Name)
	assert.Equal(t, "type-check", checks[1].Name)
	assert.Equal(t, "style", checks[2].Name)
	assert.Equal(t, "Running unit tests...", checks[0].Label)
	assert.Equal(t, "Type-checking...", checks[1].Label)
	assert.Equal(t, "Running style checks...", checks[2].Label)
}
