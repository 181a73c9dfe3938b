// Deskintel - Hybrid Workplace Intelligence Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deskintel

package database

import (
	"database/sql"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Drivers disagree about aggregate types. MySQL returns DECIMAL sums as
// []byte, pgx returns NUMERIC as strings through database/sql, and DuckDB
// returns HUGEINT as *big.Int and DECIMAL as a struct with Float64().
// normalizeValue folds them all into int64, float64, string, bool,
// time.Time, or nil.

type float64er interface {
	Float64() float64
}

var numericTypeNames = map[string]bool{
	"DECIMAL": true, "NUMERIC": true, "NEWDECIMAL": true,
	"DOUBLE": true, "FLOAT": true, "FLOAT4": true, "FLOAT8": true, "REAL": true,
	"INT": true, "INTEGER": true, "BIGINT": true, "SMALLINT": true, "TINYINT": true,
	"MEDIUMINT": true, "HUGEINT": true, "UBIGINT": true, "UINTEGER": true,
	"INT2": true, "INT4": true, "INT8": true,
	"UNSIGNED BIGINT": true, "UNSIGNED INT": true,
}

func isNumericType(ct *sql.ColumnType) bool {
	if ct == nil {
		return false
	}
	name := strings.ToUpper(ct.DatabaseTypeName())
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return numericTypeNames[name]
}

func normalizeValue(v interface{}, numeric bool) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		if numeric {
			return parseNumber(string(x))
		}
		return string(x)
	case string:
		if numeric {
			return parseNumber(x)
		}
		return x
	case int64, float64, bool, time.Time:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int8:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x <= 1<<63-1 {
			return int64(x)
		}
		return float64(x)
	case float32:
		return float64(x)
	case *big.Int:
		if x == nil {
			return nil
		}
		if x.IsInt64() {
			return x.Int64()
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case float64er:
		return x.Float64()
	default:
		return x
	}
}

// parseNumber returns int64 for integral text, float64 otherwise, and the
// text itself if it is not a number.
func parseNumber(s string) interface{} {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// AsFloat converts a normalized numeric cell to float64. ok is false for
// nil and non-numeric values.
func AsFloat(v interface{}) (f float64, ok bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// AsInt converts a normalized numeric cell to int64, truncating floats.
func AsInt(v interface{}) (i int64, ok bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	case int:
		return int64(x), true
	default:
		return 0, false
	}
}
