package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleGuest   = "guest"
)

type User struct {
	BaseModel
	Email      string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"`
	FirstName  string `gorm:"size:50" json:"firstName"`
	LastName   string `gorm:"size:50" json:"lastName"`
	Role       string `gorm:"not null;index" json:"role"` // admin, teacher, student, guest
	GuestClass string `gorm:"size:50" json:"guestClass,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

type Student struct {
	BaseModel
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	ClassID     *string    `gorm:"size:36;index" json:"classId"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	ParentEmail string     `gorm:"not null" json:"parentEmail"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

type Teacher struct {
	BaseModel
	UserID     string `gorm:"size:36;not null;index" json:"userId"`
	Department string `gorm:"not null;index" json:"department"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
