// Package preorder records reservations submitted from the landing page.
package preorder

import (
	"strings"
	"time"
)

// Preorder is one stored reservation. Rows are inserted once and never
// updated.
type Preorder struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null"`
	Variant   string    `json:"variant" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Preorder) TableName() string {
	return "preorders"
}

// Input is the submitted form.
type Input struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Variant string `json:"variant" validate:"required,variant"`
}

// Normalized trims surrounding whitespace from the name and email.
func (in Input) Normalized() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	return in
}
