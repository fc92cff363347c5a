package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLooseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01 10:30:00", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024/03/01 10:30", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"01.03.2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"3/1/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"  2024-03-01  ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := parseLooseDate(c.in)
		require.True(t, ok, c.in)
		require.Equal(t, c.want, got, c.in)
	}
}

func TestParseLooseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "вчера", "2024-13-40", "not a date"} {
		_, ok := parseLooseDate(in)
		require.False(t, ok, in)
	}
}
