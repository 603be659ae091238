// Package timestamp converts between unix timestamps and calendar dates.
package timestamp

import (
	"strconv"
	"strings"
	"time"

	"bytekit/internal/module"
	"bytekit/internal/schema"
	e "bytekit/pkg/errors"
)

const layout = "2006-01-02 15:04:05"

// now is swapped in tests
var now = time.Now

// Module returns the time module
func Module() module.Module {
	return module.Module{
		Name:        "time",
		Description: "Timestamp / date conversion",
		Commands:    commands,
	}
}

func zoneFlag() schema.Flag {
	return schema.Flag{Name: "zone", Short: "z", Help: "Time zone offset in hours, e.g. 8 or -5.5 (default: local)"}
}

func commands() []module.Command {
	return []module.Command{
		module.NewCommand(&schema.Schema{
			Name:  "ts",
			Short: "Current timestamp",
			Flags: []schema.Flag{{Name: "milli", Short: "m", Help: "Milliseconds instead of seconds", Bool: true}},
		}, ts, []module.Case{
			{
				Desc:      "Current timestamp",
				Input:     []string{},
				Output:    []string{"1700000000"},
				IsExample: true,
				Since:     "0.1.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "ts2d",
			Short: "Convert timestamp to date",
			Flags: []schema.Flag{zoneFlag()},
			Args:  []schema.Arg{{Name: "INPUT", Help: "Unix timestamp in seconds", Required: true, Stdin: true}},
		}, ts2d, []module.Case{
			{
				Desc:      "Convert timestamp to date",
				Input:     []string{"-z", "0", "10000"},
				Output:    []string{"1970-01-01 02:46:40"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:      "Convert timestamp to date in UTC+8",
				Input:     []string{"-z", "8", "10000"},
				Output:    []string{"1970-01-01 10:46:40"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Epoch",
				Input:  []string{"-z", "0", "0"},
				Output: []string{"1970-01-01 00:00:00"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:   "Half hour offset",
				Input:  []string{"-z", "5.5", "0"},
				Output: []string{"1970-01-01 05:30:00"},
				IsTest: true,
				Since:  "0.4.0",
			},
		}),
		module.NewCommand(&schema.Schema{
			Name:  "d2ts",
			Short: "Convert date to timestamp",
			Flags: []schema.Flag{zoneFlag()},
			Args:  []schema.Arg{{Name: "INPUT", Help: `Date as "YYYY-MM-DD hh:mm:ss" or RFC 3339`, Required: true, Stdin: true}},
		}, d2ts, []module.Case{
			{
				Desc:      "Convert date to timestamp",
				Input:     []string{"-z", "0", "1970-01-01 02:46:40"},
				Output:    []string{"10000"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.1.0",
			},
			{
				Desc:   "Convert date in UTC+8 to timestamp",
				Input:  []string{"-z", "8", "1970-01-01 10:46:40"},
				Output: []string{"10000"},
				IsTest: true,
				Since:  "0.1.0",
			},
			{
				Desc:      "Convert RFC 3339 date to timestamp",
				Input:     []string{"1970-01-01T02:46:40Z"},
				Output:    []string{"10000"},
				IsExample: true,
				IsTest:    true,
				Since:     "0.2.0",
			},
		}),
	}
}

func ts(m *schema.Matches) ([]string, error) {
	t := now()
	if m.Bool("milli") {
		return []string{strconv.FormatInt(t.UnixMilli(), 10)}, nil
	}
	return []string{strconv.FormatInt(t.Unix(), 10)}, nil
}

func ts2d(m *schema.Matches) ([]string, error) {
	loc, err := location(m)
	if err != nil {
		return nil, err
	}
	in := strings.TrimSpace(m.Value("INPUT"))
	sec, err := strconv.ParseInt(in, 10, 64)
	if err != nil {
		return nil, e.Newf(e.ErrInvalidNumber, "invalid timestamp %q", in).WithCause(err)
	}
	return []string{time.Unix(sec, 0).In(loc).Format(layout)}, nil
}

func d2ts(m *schema.Matches) ([]string, error) {
	loc, err := location(m)
	if err != nil {
		return nil, err
	}
	in := strings.TrimSpace(m.Value("INPUT"))
	t, err := time.ParseInLocation(layout, in, loc)
	if err != nil {
		var rfcErr error
		if t, rfcErr = time.Parse(time.RFC3339, in); rfcErr != nil {
			return nil, e.Newf(e.ErrInvalidInput, "invalid date %q", in).
				WithDetails(err.Error()).
				WithSuggestion(`Dates look like "1970-01-01 02:46:40" or "1970-01-01T02:46:40Z"`)
		}
	}
	return []string{strconv.FormatInt(t.Unix(), 10)}, nil
}

func location(m *schema.Matches) (*time.Location, error) {
	z, ok := m.Lookup("zone")
	if !ok {
		return time.Local, nil
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(z), 64)
	if err != nil || !(hours >= -12 && hours <= 14) {
		return nil, e.Newf(e.ErrInvalidInput, "invalid zone offset %q", z).
			WithSuggestion("Zone offsets are hours between -12 and 14")
	}
	return time.FixedZone("", int(hours*3600)), nil
}
