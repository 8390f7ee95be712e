package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/balkashynov/punchcard/internal/models"
)

// GetEmployee retrieves an employee by id
func (d *DB) GetEmployee(id string) (*models.Employee, error) {
	var emp models.Employee
	if err := d.gorm.First(&emp, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("employee %s not found", id)
	}
	return &emp, nil
}

// ListEmployees returns all known employees ordered by id
func (d *DB) ListEmployees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := d.gorm.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// RenameEmployee sets a new display name for an employee. This is the only
// path that may change a name: export data never overwrites it.
func (d *DB) RenameEmployee(id, name string) error {
	result := d.gorm.Model(&models.Employee{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("employee %s not found", id)
	}
	return nil
}

// EnsureEmployee inserts the employee if the id has not been seen before.
// An existing row keeps its current name.
func (d *DB) EnsureEmployee(id, name string) error {
	emp := models.Employee{ID: id, Name: name}
	return d.gorm.Clauses(clause.OnConflict{DoNothing: true}).Create(&emp).Error
}
