package db

import (
	"context"
	"strings"
)

// GetStudentsByRollNumbers resolves many roll numbers in one round trip.
func (q *Queries) GetStudentsByRollNumbers(ctx context.Context, rollNumbers []string) ([]Student, error) {
	if len(rollNumbers) == 0 {
		return nil, nil
	}
	query := `SELECT id, roll_number, name FROM students WHERE roll_number IN (?` +
		strings.Repeat(",?", len(rollNumbers)-1) + `)`
	args := make([]interface{}, len(rollNumbers))
	for i, r := range rollNumbers {
		args[i] = r
	}
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Student
	for rows.Next() {
		var i Student
		if err := rows.Scan(&i.ID, &i.RollNumber, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
