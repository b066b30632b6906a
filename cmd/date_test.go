/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	setClock(clockwork.NewFakeClockAt(testNow))
	t.Cleanup(func() { setClock(nil) })
}

func TestGetImplicitDateRange_year(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020", "2021", "2006")
}

func TestGetImplicitDateRange_month(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01", "2020-02", "2006-01")
}

func TestGetImplicitDateRange_day(t *testing.T) {
	doTestGetImplicitDateRange(t, "2020-01-01", "2020-01-02", "2006-01-02")
}

func TestGetImplicitDateRange_invalid(t *testing.T) {
	for _, ds := range []string{"2020-01-0123", "not_real", "30x", "-3d"} {
		_, _, err := getImplicitDateRange(ds, time.UTC)
		require.Error(t, err, ds)
		assert.Contains(t, err.Error(), "Invalid format", ds)
	}
}

func doTestGetImplicitDateRange(t *testing.T, startString string, endString string, format string) {
	start, end, err := getImplicitDateRange(startString, time.UTC)
	require.NoError(t, err)

	expectedStart, err := time.Parse(format, startString)
	require.NoError(t, err)
	expectedEnd, err := time.Parse(format, endString)
	require.NoError(t, err)

	assert.Equal(t, expectedStart, start)
	assert.Equal(t, expectedEnd, end)
}

func TestGetImplicitDateRange_location(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	start, end, err := getImplicitDateRange("2024-01-01", tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 31, 15, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestGetExplicitDateRange_valid(t *testing.T) {
	start, end, err := getExplicitDateRange("2020", "2020-02-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestGetExplicitDateRange_invalid(t *testing.T) {
	_, _, err := getExplicitDateRange("2020", "abc", time.UTC)
	assert.Error(t, err)
}

func TestParseSingleDatestring_Relative(t *testing.T) {
	freezeClock(t)

	tests := []struct {
		input    string
		expected time.Time
	}{
		{"30d", testNow.AddDate(0, 0, -30)},
		{"12w", testNow.AddDate(0, 0, -84)},
		{"6m", testNow.AddDate(0, -6, 0)},
		{"10y", testNow.AddDate(-10, 0, 0)},
	}

	for _, tc := range tests {
		pd, err := parseSingleDatestring(tc.input, time.UTC)
		require.NoError(t, err, tc.input)
		assert.True(t, pd.Relative, tc.input)
		assert.True(t, tc.expected.Equal(pd.Date), "%s: got %v, want %v", tc.input, pd.Date, tc.expected)
	}
}

func TestParseDateRangeFromArgs(t *testing.T) {
	freezeClock(t)

	start, end, err := parseDateRangeFromArgs([]string{"7d"}, time.UTC)
	require.NoError(t, err)
	assert.True(t, testNow.AddDate(0, 0, -7).Equal(start))
	assert.True(t, testNow.Equal(end))

	_, _, err = parseDateRangeFromArgs([]string{"2021", "2020"}, time.UTC)
	assert.Error(t, err)

	_, _, err = parseDateRangeFromArgs([]string{"2020", "2021", "2022"}, time.UTC)
	assert.Error(t, err)
}

func TestParseDateRangeOrDefault(t *testing.T) {
	freezeClock(t)

	start, end, err := parseDateRangeOrDefault(nil, time.UTC, 30*24*time.Hour)
	require.NoError(t, err)
	assert.True(t, testNow.Equal(end))
	assert.Equal(t, 30*24*time.Hour, end.Sub(start))

	start, end, err = parseDateRangeOrDefault([]string{"2020-05"}, time.UTC, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), end)
}
