package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// parseNumeric converts a NUMERIC column selected as text into a float64.
func parseNumeric(value sql.NullString) (float64, error) {
	if !value.Valid {
		return 0, nil
	}
	raw := strings.TrimSpace(value.String)
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return f, nil
}

func nullString(value string) sql.NullString {
	value = strings.TrimSpace(value)
	return sql.NullString{String: value, Valid: value != ""}
}
