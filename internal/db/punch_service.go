package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/punchcard/internal/models"
)

// PunchRow is one normalized export row ready for insertion.
type PunchRow struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	Time         string
	Source       string
}

// IngestBatch inserts a batch of punches inside a single transaction.
// Unknown employees are created on first sighting; an existing employee's
// name is left alone. Duplicate punches are dropped by the unique
// (employee, date, time) constraint. Returns how many punches were actually
// inserted.
func (d *DB) IngestBatch(rows []PunchRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	err := d.gorm.Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			emp := models.Employee{ID: r.EmployeeID, Name: r.EmployeeName}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&emp).Error; err != nil {
				return fmt.Errorf("failed to upsert employee %s: %w", r.EmployeeID, err)
			}

			punch := models.Punch{
				EmployeeID: r.EmployeeID,
				Date:       r.Date,
				Time:       r.Time,
				Source:     r.Source,
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&punch)
			if result.Error != nil {
				return fmt.Errorf("failed to insert punch %s %s %s: %w", r.EmployeeID, r.Date, r.Time, result.Error)
			}
			inserted += int(result.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// CountPunches returns the total number of stored punches
func (d *DB) CountPunches() (int64, error) {
	var count int64
	if err := d.gorm.Model(&models.Punch{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PunchesForDate returns one employee's punches for a single date, ordered
// by time
func (d *DB) PunchesForDate(employeeID, date string) ([]models.Punch, error) {
	var punches []models.Punch
	err := d.gorm.Where("employee_id = ? AND date = ?", employeeID, date).
		Order("time ASC").
		Find(&punches).Error
	if err != nil {
		return nil, err
	}
	return punches, nil
}

// PunchesInRange returns one employee's punches with date between from and
// to inclusive, ordered by date then time
func (d *DB) PunchesInRange(employeeID, from, to string) ([]models.Punch, error) {
	var punches []models.Punch
	err := d.gorm.Where("employee_id = ? AND date BETWEEN ? AND ?", employeeID, from, to).
		Order("date ASC, time ASC").
		Find(&punches).Error
	if err != nil {
		return nil, err
	}
	return punches, nil
}

// PunchesForEmployee returns every punch for an employee, ordered by date
// then time
func (d *DB) PunchesForEmployee(employeeID string) ([]models.Punch, error) {
	var punches []models.Punch
	err := d.gorm.Where("employee_id = ?", employeeID).
		Order("date ASC, time ASC").
		Find(&punches).Error
	if err != nil {
		return nil, err
	}
	return punches, nil
}

// PunchTimesByDate groups an employee's punch times per date. An empty
// from/to pair means no date filter. Times within a date come back sorted.
func (d *DB) PunchTimesByDate(employeeID, from, to string) (map[string][]string, error) {
	query := d.gorm.Model(&models.Punch{}).
		Where("employee_id = ?", employeeID).
		Order("date ASC, time ASC")
	if from != "" && to != "" {
		query = query.Where("date BETWEEN ? AND ?", from, to)
	}

	var punches []models.Punch
	if err := query.Find(&punches).Error; err != nil {
		return nil, err
	}

	byDate := make(map[string][]string)
	for _, p := range punches {
		byDate[p.Date] = append(byDate[p.Date], p.Time)
	}
	return byDate, nil
}
