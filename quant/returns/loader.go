package returns

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"gasmethod/infra/errorx"
	"gasmethod/infra/errorx/errCode"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errorx.Newf(errCode.PARSE_FAILURE, "unknown date format %q", s)
}

// 空值、null、NaN 视为缺失
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "nan", "na":
		return math.NaN(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errorx.Wrap(errCode.PARSE_FAILURE, err, "parse price "+s)
	}
	return d.InexactFloat64(), nil
}

// LoadCSV 读取带表头的 csv, dateCol/valueCol 为列名
func LoadCSV(path, dateCol, valueCol string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, errorx.Wrap(errCode.IO_FAILURE, err, "open "+path)
	}
	defer f.Close()
	return ReadCSV(f, dateCol, valueCol)
}

func ReadCSV(r io.Reader, dateCol, valueCol string) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return Series{}, errorx.Wrap(errCode.PARSE_FAILURE, err, "read csv header")
	}
	di, vi := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case dateCol:
			di = i
		case valueCol:
			vi = i
		}
	}
	if di < 0 || vi < 0 {
		return Series{}, errorx.Newf(errCode.PARSE_FAILURE, "columns %q/%q not found in %v", dateCol, valueCol, header)
	}

	var s Series
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, errorx.Wrap(errCode.PARSE_FAILURE, err, "read csv")
		}
		t, err := parseDate(rec[di])
		if err != nil {
			return Series{}, errorx.Wrap(errCode.PARSE_FAILURE, err, fmt.Sprintf("line %d", line))
		}
		v, err := parsePrice(rec[vi])
		if err != nil {
			return Series{}, errorx.Wrap(errCode.PARSE_FAILURE, err, fmt.Sprintf("line %d", line))
		}
		s.Dates = append(s.Dates, t)
		s.Values = append(s.Values, v)
	}
	if s.Len() == 0 {
		return Series{}, errorx.New(errCode.EMPTY_VALUE, "csv has no rows")
	}
	s.Sort()
	return s, nil
}

// LoadJSON 用 gjson 路径读取日期数组和价格数组
// 日期可为 unix 秒或日期字符串, 价格中的 null 视为缺失
// 例: chart.result.0.timestamp / chart.result.0.indicators.quote.0.close
func LoadJSON(path, datesPath, valuesPath string) (Series, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Series{}, errorx.Wrap(errCode.IO_FAILURE, err, "read "+path)
	}
	return ParseJSON(b, datesPath, valuesPath)
}

func ParseJSON(b []byte, datesPath, valuesPath string) (Series, error) {
	if !gjson.ValidBytes(b) {
		return Series{}, errorx.New(errCode.PARSE_FAILURE, "invalid json")
	}
	dr := gjson.GetBytes(b, datesPath)
	vr := gjson.GetBytes(b, valuesPath)
	if !dr.IsArray() || !vr.IsArray() {
		return Series{}, errorx.Newf(errCode.PARSE_FAILURE, "%q or %q is not an array", datesPath, valuesPath)
	}
	dates, values := dr.Array(), vr.Array()
	if len(dates) != len(values) {
		return Series{}, errorx.Newf(errCode.PARSE_FAILURE, "dates %d != values %d", len(dates), len(values))
	}

	s := Series{Dates: make([]time.Time, len(dates)), Values: make([]float64, len(values))}
	for i := range dates {
		switch dates[i].Type {
		case gjson.Number:
			s.Dates[i] = time.Unix(dates[i].Int(), 0).UTC()
		case gjson.String:
			t, err := parseDate(dates[i].Str)
			if err != nil {
				return Series{}, err
			}
			s.Dates[i] = t
		default:
			return Series{}, errorx.Newf(errCode.PARSE_FAILURE, "bad date at %d: %s", i, dates[i].Raw)
		}

		switch values[i].Type {
		case gjson.Null:
			s.Values[i] = math.NaN()
		case gjson.Number:
			v, err := parsePrice(values[i].Raw)
			if err != nil {
				return Series{}, err
			}
			s.Values[i] = v
		case gjson.String:
			v, err := parsePrice(values[i].Str)
			if err != nil {
				return Series{}, err
			}
			s.Values[i] = v
		default:
			return Series{}, errorx.Newf(errCode.PARSE_FAILURE, "bad value at %d: %s", i, values[i].Raw)
		}
	}
	if s.Len() == 0 {
		return Series{}, errorx.New(errCode.EMPTY_VALUE, "json has no rows")
	}
	s.Sort()
	return s, nil
}
