package models

type Class struct {
	BaseModel
	Name          string  `gorm:"uniqueIndex;not null" json:"name"`
	Description   string  `json:"description"`
	TeacherID     *string `gorm:"size:36;index" json:"teacherId"`
	StudentsCount int     `gorm:"not null;default:0" json:"studentsCount"`

	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

type Subject struct {
	BaseModel
	Name        string  `gorm:"not null;index" json:"name"`
	Code        string  `gorm:"uniqueIndex;not null" json:"code"`
	Description string  `json:"description"`
	TeacherID   *string `gorm:"size:36;index" json:"teacherId"`
	ClassName   string  `json:"class"`

	Teacher *Teacher `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}
