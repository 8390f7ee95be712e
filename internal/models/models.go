package models

// Employee is one person known to the biometric device. Employees are
// created on first sighting of an unseen id during ingestion; the engine
// never deletes them.
type Employee struct {
	ID   string `gorm:"primarykey" json:"employeeId"`
	Name string `gorm:"not null" json:"name"`

	// Relationships
	Punches []Punch `gorm:"foreignKey:EmployeeID" json:"-"`
}

// Punch represents a single badge event from the device export.
// Punches are immutable once stored: the unique (employee, date, time)
// constraint silently absorbs re-ingested rows.
type Punch struct {
	ID uint `gorm:"primarykey" json:"-"`

	EmployeeID string `gorm:"not null;uniqueIndex:idx_punches_dedupe;index:idx_punches_employee_date" json:"employeeId"`
	Date       string `gorm:"not null;uniqueIndex:idx_punches_dedupe;index:idx_punches_employee_date;index:idx_punches_date" json:"date"` // YYYY-MM-DD
	Time       string `gorm:"not null;uniqueIndex:idx_punches_dedupe" json:"time"`                                                        // HH:MM
	Source     string `gorm:"default:device export" json:"source"`

	// Relationships
	Employee Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
